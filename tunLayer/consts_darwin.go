//go:build darwin

package tunLayer

// xnu 自带的头文件里没有 /dev/tunN 这套ioctl, 它们来自 tuntaposx 风格的 tun kext;
// 值与 freebsd 的 _IOW('t', 94, int) / _IOW('t', 96, int) 完全一致。
const (
	tunSIFMODE = 0x8004745e
	tunSIFHEAD = 0x80047460
)
