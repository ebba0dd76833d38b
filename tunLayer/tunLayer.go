/*
Package tunLayer 实现对 tun 虚拟网卡的控制面: 创建/销毁设备, 读写时的
address family 打头信息 的编解码, 以及向内核路由表注入路由.

两大平台家族的内核约定完全不同, 本包把它们折叠进同一套API, 由build tag选择实现:

Linux 走 clone-device 方式, open /dev/net/tun 后用 TUNSETIFF 绑定接口名,
每个packet前面带 4字节的 packet information 头 (flags + 以太类型);

darwin/freebsd 走 cloned-interface 方式, SIOCIFCREATE2 克隆出接口后
open /dev/名字, 开 TUNSIFHEAD 之后 每个packet前面带 4字节的 大端 address family.

两家的头长度都是 HeaderLen. ioctl 用的 ifreq 等定长结构 由纯函数构建,
与真正发起 syscall 的代码分开, 方便单元测试.

本包不管包的转发，也不管谁来读写设备；那些是 上层(根包)的事。
*/
package tunLayer

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

const (
	// 每个从tun读出/写入tun的packet 打头的 family 信息的长度。
	// linux 是 struct tun_pi, bsd 是一个 大端 uint32, 碰巧都是4字节。
	HeaderLen = 4

	// DecodeAddressFamily 遇到认不出的以太类型时返回的占位值.
	AFUnknown uint32 = 255
)

var ErrUnsupportedFamily = errors.New("unsupported address family")

// Tunif 是一个已创建的tun接口的把手: 打开的设备文件 加上 内核最终确定的接口名。
//
// 注意 接口名以内核返回的为准, 可能跟请求的名字不一样(比如请求 "tun%d" 这种模板),
// 所以二者必须一起持有; 销毁接口时用的就是这个名字.
type Tunif struct {
	*os.File

	name string
}

// Name returns the kernel-assigned interface name.
func (t *Tunif) Name() string {
	return t.name
}

// 接口名太长的话, ifreq 里就放不下以 NUL 结尾的名字了
func checkName(name string) error {
	if name == "" {
		return errors.New("tun interface name is empty")
	}
	if len(name) >= unix.IFNAMSIZ {
		return errors.New("tun interface name too long: " + name)
	}
	return nil
}
