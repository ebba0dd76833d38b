package tunLayer

import (
	"github.com/e1732a364fed/tun_simple/utils"
	"golang.org/x/sys/unix"
)

// Netmask 根据前缀长度算出掩码字节, 长度与该family的地址长度相同 (4或16).
//
// 前 prefixLen/8 个字节是 0xFF; 若 prefixLen 不是8的倍数, 下一个字节是
// 高 prefixLen%8 位为1的值; 其余字节为0。纯函数, 不碰任何socket。
func Netmask(af uint32, prefixLen int) ([]byte, error) {
	var size, max int

	switch af {
	case unix.AF_INET:
		size, max = 4, 32
	case unix.AF_INET6:
		size, max = 16, 128
	default:
		return nil, utils.ErrInErr{ErrDesc: "can not make netmask", ErrDetail: ErrUnsupportedFamily, Data: af}
	}

	if prefixLen < 0 || prefixLen > max {
		return nil, utils.ErrInErr{ErrDesc: "can not make netmask, invalid prefix length", ErrDetail: utils.ErrWrongParameter, Data: prefixLen}
	}

	mask := make([]byte, size)

	q, r := prefixLen/8, prefixLen%8
	for i := 0; i < q; i++ {
		mask[i] = 0xff
	}
	if r > 0 {
		mask[q] = byte(uint16(0xff00) >> r)
	}

	return mask, nil
}
