package greeting

import (
	"encoding/binary"
)

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func getUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func putFixedString(dst []byte, src string, length int, offset *int) {
	copy(dst[*offset:*offset+length], src)
	*offset += length
}
