//go:build darwin || freebsd

package tunLayer

import (
	"encoding/binary"

	"github.com/e1732a364fed/tun_simple/utils"
	"golang.org/x/sys/unix"
)

// 开了 TUNSIFHEAD 的tun, 每个packet前带4字节 大端的 address family 数字。

// DecodeAddressFamily 从packet头部读出 address family。
// buf 长度必须 >= HeaderLen, 这是调用方要保证的前提, 此处不做检查。
//
// 头里是什么数字就返回什么数字, 不认识的值由调用方对照 AF_INET/AF_INET6 自行判断。
func DecodeAddressFamily(buf []byte) uint32 {
	return binary.BigEndian.Uint32(buf[:4])
}

// EncodeAddressFamily 把 af 写进packet头部的4个字节, 不动后面的payload。
// buf 长度必须 >= HeaderLen。af 只支持 AF_INET 和 AF_INET6, 否则不碰buf直接报错。
func EncodeAddressFamily(buf []byte, af uint32) error {
	switch af {
	case unix.AF_INET, unix.AF_INET6:
	default:
		return utils.ErrInErr{ErrDesc: "can not encode af header", ErrDetail: ErrUnsupportedFamily, Data: af}
	}

	binary.BigEndian.PutUint32(buf[:4], af)
	return nil
}
