//go:build linux

package tunLayer

import (
	"encoding/binary"

	"github.com/e1732a364fed/tun_simple/utils"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// linux的tun在不加 IFF_NO_PI 时, 每个packet前带一个 struct tun_pi:
// 2字节flags + 2字节大端的以太类型。本包就吃这4个字节。

// DecodeAddressFamily 从packet头部读出 address family。
// buf 长度必须 >= HeaderLen, 这是调用方要保证的前提, 此处不做检查。
//
// 认不出的以太类型 会打一条warn日志 并返回 AFUnknown, 不算错误, 由调用方决定是否丢包。
func DecodeAddressFamily(buf []byte) uint32 {
	etherType := binary.BigEndian.Uint16(buf[2:4])

	switch etherType {
	case unix.ETH_P_IP:
		return unix.AF_INET
	case unix.ETH_P_IPV6:
		return unix.AF_INET6
	default:
		if ce := utils.CanLogWarn("unknown ether frame type received"); ce != nil {
			ce.Write(zap.Uint16("etherType", etherType))
		}
		return AFUnknown
	}
}

// EncodeAddressFamily 把 af 写进packet头部的4个字节, 不动后面的payload。
// buf 长度必须 >= HeaderLen。af 只支持 AF_INET 和 AF_INET6, 否则不碰buf直接报错。
func EncodeAddressFamily(buf []byte, af uint32) error {
	var etherType uint16

	switch af {
	case unix.AF_INET:
		etherType = unix.ETH_P_IP
	case unix.AF_INET6:
		etherType = unix.ETH_P_IPV6
	default:
		return utils.ErrInErr{ErrDesc: "can not encode af header", ErrDetail: ErrUnsupportedFamily, Data: af}
	}

	buf[0] = 0
	buf[1] = 0
	binary.BigEndian.PutUint16(buf[2:4], etherType)
	return nil
}
