//go:build darwin || freebsd

package tunLayer

import (
	"net"
	"strconv"
	"syscall"

	"github.com/e1732a364fed/tun_simple/utils"
	"go.uber.org/zap"
	"golang.org/x/net/route"
	"golang.org/x/sys/unix"
)

// 一条 RTM_ADD 消息: 头部字段 + 按 RTAX 枚举顺序排好的地址块
// (这里用到 DST, GATEWAY, NETMASK 三个), gateway 是接口自己的链路层地址。
// 组装交给 x/net/route, 它会把 sockaddr 的长度对齐等琐事处理好。
func (c *RouteClient) addRoute(af uint32, addr []byte, prefixLen int) error {
	rtFlags := unix.RTF_UP | unix.RTF_HOST | unix.RTF_STATIC

	addrs := make([]route.Addr, syscall.RTAX_MAX)

	switch af {
	case unix.AF_INET:
		dst := &route.Inet4Addr{}
		copy(dst.IP[:], addr)
		addrs[syscall.RTAX_DST] = dst

		// 给了前缀的才带掩码; 整地址的路由是host route, 不带掩码
		if prefixLen < 32 {
			mask, err := Netmask(af, prefixLen)
			if err != nil {
				return err
			}
			m := &route.Inet4Addr{}
			copy(m.IP[:], mask)
			addrs[syscall.RTAX_NETMASK] = m
			rtFlags &^= unix.RTF_HOST
		}

	case unix.AF_INET6:
		dst := &route.Inet6Addr{}
		copy(dst.IP[:], addr)
		addrs[syscall.RTAX_DST] = dst

		if prefixLen < 128 {
			mask, err := Netmask(af, prefixLen)
			if err != nil {
				return err
			}
			m := &route.Inet6Addr{}
			copy(m.IP[:], mask)
			addrs[syscall.RTAX_NETMASK] = m
			rtFlags &^= unix.RTF_HOST
		}
	}

	la, err := interfaceLinkAddr(c.ifName)
	if err != nil {
		return err
	}
	addrs[syscall.RTAX_GATEWAY] = la

	msg := &route.RouteMessage{
		Version: syscall.RTM_VERSION,
		Type:    syscall.RTM_ADD,
		Flags:   rtFlags,
		Seq:     int(c.seq.Inc()),
		Addrs:   addrs,
	}

	wire, err := msg.Marshal()
	if err != nil {
		return utils.ErrInErr{ErrDesc: "failed to marshal the route message", ErrDetail: err}
	}

	fd, err := unix.Socket(unix.AF_ROUTE, unix.SOCK_RAW, 0)
	if err != nil {
		return utils.ErrInErr{ErrDesc: "failed to open a routing socket", ErrDetail: err}
	}
	defer unix.Close(fd)

	n, err := unix.Write(fd, wire)
	if err != nil {
		return utils.ErrInErr{ErrDesc: "failed to install route information", ErrDetail: err}
	}
	if n != len(wire) {
		return utils.ErrInErr{ErrDesc: "failed to install route information", ErrDetail: utils.ErrShortWrite, Data: n}
	}

	if ce := utils.CanLogDebug("route added"); ce != nil {
		ce.Write(
			zap.String("interface", c.ifName),
			zap.String("route", net.IP(addr).String()+"/"+strconv.Itoa(prefixLen)),
		)
	}
	return nil
}

// interfaceLinkAddr 翻接口列表, 按名字找出接口的链路层地址(sockaddr_dl那套)。
// 找不到说明接口根本不在, 直接报错。
func interfaceLinkAddr(name string) (*route.LinkAddr, error) {
	rib, err := route.FetchRIB(syscall.AF_UNSPEC, syscall.NET_RT_IFLIST, 0)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "cannot fetch the interface list", ErrDetail: err}
	}
	msgs, err := route.ParseRIB(syscall.NET_RT_IFLIST, rib)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "cannot parse the interface list", ErrDetail: err}
	}

	for _, m := range msgs {
		im, ok := m.(*route.InterfaceMessage)
		if !ok || im.Name != name {
			continue
		}
		if la, ok := im.Addrs[syscall.RTAX_IFP].(*route.LinkAddr); ok && la != nil {
			return la, nil
		}
	}

	return nil, utils.ErrInErr{ErrDesc: "cannot find a link-layer address of the interface", Data: name}
}
