//go:build linux

package tunLayer

import (
	"os"
	"unsafe"

	"github.com/e1732a364fed/tun_simple/utils"
	"golang.org/x/sys/unix"
)

const tunDevPath = "/dev/net/tun"

// struct ifreq 总长40: 16字节接口名 + 24字节union (union里最大的成员是 struct ifmap)。
// 不同的ioctl用union里不同的成员, 这里按用途各定义一个定长结构, 省去endian换算。
const ifreqUnionSize = 24

type ifreqFlags struct {
	name  [unix.IFNAMSIZ]byte
	flags uint16
	pad   [ifreqUnionSize - 2]byte
}

type ifreqMTU struct {
	name [unix.IFNAMSIZ]byte
	mtu  int32
	pad  [ifreqUnionSize - 4]byte
}

// 下面的构建/解析函数都是纯函数, 不发 syscall, 方便单测。

func buildIfreqFlags(name string, flags uint16) (ifr ifreqFlags, err error) {
	if err = checkName(name); err != nil {
		return
	}
	copy(ifr.name[:], name)
	ifr.flags = flags
	return
}

func buildIfreqMTU(name string, mtu int) (ifr ifreqMTU, err error) {
	if err = checkName(name); err != nil {
		return
	}
	copy(ifr.name[:], name)
	ifr.mtu = int32(mtu)
	return
}

// 内核返回的名字以 NUL 结尾
func ifreqName(name *[unix.IFNAMSIZ]byte) string {
	for i, b := range name {
		if b == 0 {
			return string(name[:i])
		}
	}
	return string(name[:])
}

func ioctlPtr(fd uintptr, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Create 创建一个tun接口并把它拉起(IFF_UP), 返回的 Tunif 里带着内核最终给的名字。
//
// 不加 IFF_NO_PI, 这样每个packet都带着4字节的 packet information 头,
// 本包的af编解码就指着它活; 见 DecodeAddressFamily。
//
// requestedName 可以是 "tun%d" 这种模板, 内核会填上编号, 一切以返回的名字为准。
func Create(requestedName string) (*Tunif, error) {
	ifr, err := buildIfreqFlags(requestedName, unix.IFF_TUN)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(tunDevPath, os.O_RDWR, 0)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "cannot open the tun clone device", ErrDetail: err, Data: tunDevPath}
	}

	if err = ioctlPtr(f.Fd(), unix.TUNSETIFF, unsafe.Pointer(&ifr)); err != nil {
		f.Close()
		return nil, utils.ErrInErr{ErrDesc: "cannot create a tun interface", ErrDetail: err, Data: requestedName}
	}

	actualName := ifreqName(&ifr.name)

	if err = bringUp(actualName); err != nil {
		f.Close()
		return nil, err
	}

	return &Tunif{File: f, name: actualName}, nil
}

// Destroy 在linux上是故意的no-op: 持有tun的fd关掉后, 内核自己会回收接口。
func Destroy(actualName string) error {
	utils.Debug("tun Destroy is a no-op here, closing the handle suffices")
	return nil
}

// 控制面的ioctl要走一个临时的 AF_INET dgram socket, 用完即关, 不跨调用持有。
func bringUp(name string) error {
	ifr, err := buildIfreqFlags(name, unix.IFF_UP)
	if err != nil {
		return err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return utils.ErrInErr{ErrDesc: "failed to open control socket", ErrDetail: err}
	}
	defer unix.Close(fd)

	if err = ioctlPtr(uintptr(fd), unix.SIOCSIFFLAGS, unsafe.Pointer(&ifr)); err != nil {
		return utils.ErrInErr{ErrDesc: "failed to make the tun interface up", ErrDetail: err, Data: name}
	}
	return nil
}

// SetMTU 改接口的MTU。创建后可选的一步, 失败不影响接口存在。
func SetMTU(name string, mtu int) error {
	ifr, err := buildIfreqMTU(name, mtu)
	if err != nil {
		return err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return utils.ErrInErr{ErrDesc: "failed to open control socket", ErrDetail: err}
	}
	defer unix.Close(fd)

	if err = ioctlPtr(uintptr(fd), unix.SIOCSIFMTU, unsafe.Pointer(&ifr)); err != nil {
		return utils.ErrInErr{ErrDesc: "failed to set mtu", ErrDetail: err, Data: mtu}
	}
	return nil
}
