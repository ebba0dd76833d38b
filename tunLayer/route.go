package tunLayer

import (
	"github.com/e1732a364fed/tun_simple/utils"
	"go.uber.org/atomic"
	"golang.org/x/sys/unix"
)

// RouteClient 往内核路由表注入 "发往某前缀的流量请走这个tun接口" 的路由。
//
// 一个client绑定一个接口名, 自己持有路由消息的序列号计数器, 不用进程级的全局变量。
// 加路由是 fire-and-forget 的一次性动作: 本包不记账, 也没有对应的删除操作,
// 写进内核的路由在进程退出后还在。
type RouteClient struct {
	ifName string
	seq    atomic.Int32
}

func NewRouteClient(ifName string) *RouteClient {
	return &RouteClient{ifName: ifName}
}

// AddRoute 把 "addr/prefixLen 经由本client绑定的接口" 写进内核路由表。
//
// addr 的长度必须与 af 匹配 (AF_INET 4字节, AF_INET6 16字节), prefixLen 也要
// 在该family的范围内; 不合法的参数在碰任何socket之前就地报错。
func (c *RouteClient) AddRoute(af uint32, addr []byte, prefixLen int) error {
	switch af {
	case unix.AF_INET:
		if len(addr) != 4 {
			return utils.ErrInErr{ErrDesc: "route dest length does not match AF_INET", ErrDetail: utils.ErrWrongParameter, Data: len(addr)}
		}
		if prefixLen < 0 || prefixLen > 32 {
			return utils.ErrInErr{ErrDesc: "invalid route prefix length", ErrDetail: utils.ErrWrongParameter, Data: prefixLen}
		}
	case unix.AF_INET6:
		if len(addr) != 16 {
			return utils.ErrInErr{ErrDesc: "route dest length does not match AF_INET6", ErrDetail: utils.ErrWrongParameter, Data: len(addr)}
		}
		if prefixLen < 0 || prefixLen > 128 {
			return utils.ErrInErr{ErrDesc: "invalid route prefix length", ErrDetail: utils.ErrWrongParameter, Data: prefixLen}
		}
	default:
		return utils.ErrInErr{ErrDesc: "can not add route", ErrDetail: ErrUnsupportedFamily, Data: af}
	}

	return c.addRoute(af, addr, prefixLen)
}
