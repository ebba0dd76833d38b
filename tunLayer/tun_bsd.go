//go:build darwin || freebsd

package tunLayer

import (
	"os"
	"unsafe"

	"github.com/e1732a364fed/tun_simple/utils"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// bsd的 struct ifreq 总长32: 16字节接口名 + 16字节union (最大成员是 sockaddr)。
const ifreqUnionSize = 16

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

// Create 克隆出一个tun接口, 打开它的设备文件, 配好模式后拉起(IFF_UP)。
//
// 流程与各家bsd的惯例一致: SIOCIFCREATE2 克隆 -> open /dev/接口名 ->
// TUNSIFMODE 设成点对点 -> TUNSIFHEAD 让每个packet带上4字节的 address family 头。
// 接口名以 SIOCIFCREATE2 返回的为准, 可能带上内核分配的编号。
//
// 注意darwin上这依赖 tuntaposx 风格的 tun kext; 系统原生的 utun 不走这条路。
func Create(requestedName string) (*Tunif, error) {
	ifr, err := buildIfreqFlags(requestedName, 0)
	if err != nil {
		return nil, err
	}

	// 控制socket在本次调用内用完即关, 不跨调用持有
	ctlFd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "failed to open control socket", ErrDetail: err}
	}
	defer unix.Close(ctlFd)

	if err = ioctlPtr(uintptr(ctlFd), unix.SIOCIFCREATE2, unsafe.Pointer(&ifr)); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "cannot create a tun interface", ErrDetail: err, Data: requestedName}
	}

	actualName := ifreqName(&ifr.name)
	devPath := "/dev/" + actualName

	f, err := os.OpenFile(devPath, os.O_RDWR, 0)
	if err != nil {
		destroyBestEffort(actualName)
		return nil, utils.ErrInErr{ErrDesc: "cannot open the tun device", ErrDetail: err, Data: devPath}
	}

	if err = unix.IoctlSetPointerInt(int(f.Fd()), tunSIFMODE, unix.IFF_POINTOPOINT); err != nil {
		f.Close()
		destroyBestEffort(actualName)
		return nil, utils.ErrInErr{ErrDesc: "failed to set TUNSIFMODE", ErrDetail: err, Data: actualName}
	}

	// TUNSIFHEAD 开启之后, 每个packet前面才会有 address family 信息
	if err = unix.IoctlSetPointerInt(int(f.Fd()), tunSIFHEAD, 1); err != nil {
		f.Close()
		destroyBestEffort(actualName)
		return nil, utils.ErrInErr{ErrDesc: "failed to set TUNSIFHEAD", ErrDetail: err, Data: actualName}
	}

	if err = bringUpWith(ctlFd, actualName); err != nil {
		f.Close()
		destroyBestEffort(actualName)
		return nil, err
	}

	return &Tunif{File: f, name: actualName}, nil
}

// Destroy 销毁tun接口。bsd的tun不随fd关闭而消失, 必须显式销毁, 不然会留到下次开机。
// 失败只上报不惊慌, 调用方按 best-effort 清理对待。
func Destroy(actualName string) error {
	ifr, err := buildIfreqFlags(actualName, 0)
	if err != nil {
		return err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return utils.ErrInErr{ErrDesc: "failed to open control socket for tun deletion", ErrDetail: err}
	}
	defer unix.Close(fd)

	if err = ioctlPtr(uintptr(fd), unix.SIOCIFDESTROY, unsafe.Pointer(&ifr)); err != nil {
		return utils.ErrInErr{ErrDesc: "cannot destroy the tun interface", ErrDetail: err, Data: actualName}
	}
	return nil
}

// Create 半路失败时把已经克隆出来的接口清理掉, 清不掉也只能记一笔
func destroyBestEffort(name string) {
	if err := Destroy(name); err != nil {
		if ce := utils.CanLogWarn("failed to clean up the half-created tun interface"); ce != nil {
			ce.Write(zap.String("name", name), zap.Error(err))
		}
	}
}

func bringUpWith(ctlFd int, name string) error {
	ifr, err := buildIfreqFlags(name, unix.IFF_UP)
	if err != nil {
		return err
	}

	if err = ioctlPtr(uintptr(ctlFd), unix.SIOCSIFFLAGS, unsafe.Pointer(&ifr)); err != nil {
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
