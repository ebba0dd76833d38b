//go:build linux

package tunLayer

import (
	"net"
	"strconv"

	"github.com/e1732a364fed/tun_simple/utils"
	"go.uber.org/zap"
)

// linux改路由表走的是netlink那一套, 跟bsd的路由socket完全是两码事,
// 本作没有内置它。这里按文档约定打一条warn然后返回成功,
// 路由请在外部用 ip route 配好; cmd层会把现成的命令打印出来。
func (c *RouteClient) addRoute(af uint32, addr []byte, prefixLen int) error {
	if ce := utils.CanLogWarn("built-in route manipulation is not supported here, please add the route manually"); ce != nil {
		ce.Write(
			zap.String("interface", c.ifName),
			zap.String("route", net.IP(addr).String()+"/"+strconv.Itoa(prefixLen)),
		)
	}
	return nil
}
