package utils

import (
	"bytes"
	"flag"
	"sync"
)

var (
	standardBytesPool sync.Pool //专门储存 长度为 StandardBytesLength 的 []byte

	// tun上一次Read就是一个完整packet, 所以buffer必须一次给够。
	// 64k 比 ipv4 packet 的理论最大值 65535 还要大, 而且也盖过了常见的大MTU,
	// 所以读tun用这个池足矣。
	standardPacketPool sync.Pool // 专门储存 长度为 MaxBufLen 的 []byte

	bufPool sync.Pool //储存 *bytes.Buffer
)

// 即MTU, Maximum transmission unit, 参照的是 Ethernet v2 的MTU;
// 注意从tun读出的数据还会带一个4字节的 address family 头, 所以
// 单靠 StandardBytesLength 长度的buf 读满MTU的包会差几个字节, 读tun请用 GetPacket.
const StandardBytesLength int = 1500

// 本作设定的最大buf大小，64k
var MaxBufLen = DefaultMaxBufLen

const DefaultMaxBufLen = 64 * 1024

func init() {
	flag.IntVar(&MaxBufLen, "bl", DefaultMaxBufLen, "buf len")

	standardBytesPool = sync.Pool{
		New: func() interface{} {
			return make([]byte, StandardBytesLength)
		},
	}

	standardPacketPool = sync.Pool{
		New: func() interface{} {
			return make([]byte, MaxBufLen)
		},
	}

	bufPool = sync.Pool{
		New: func() interface{} {
			return &bytes.Buffer{}
		},
	}
}

//从Pool中获取一个 *bytes.Buffer
func GetBuf() *bytes.Buffer {
	return bufPool.Get().(*bytes.Buffer)
}

//将 buf 放回 Pool
func PutBuf(buf *bytes.Buffer) {
	buf.Reset()
	bufPool.Put(buf)
}

//建议在 Read tun设备 时, 使用 GetPacket函数 获取到足够大的 []byte（MaxBufLen）
func GetPacket() []byte {
	return standardPacketPool.Get().([]byte)
}

// 放回用 GetPacket 获取的 []byte
func PutPacket(bs []byte) {
	c := cap(bs)
	if c < MaxBufLen {
		if c >= StandardBytesLength {
			standardBytesPool.Put(bs[:StandardBytesLength])
		}
		return
	}

	standardPacketPool.Put(bs[:MaxBufLen])
}

// 从Pool中获取一个 StandardBytesLength 长度的 []byte
func GetMTU() []byte {
	return standardBytesPool.Get().([]byte)
}

// 从pool中获取 []byte, 根据给出长度不同，来源于的Pool会不同.
func GetBytes(size int) []byte {
	if size <= StandardBytesLength {
		bs := standardBytesPool.Get().([]byte)
		return bs[:size]
	}

	return GetPacket()[:size]

}

// 根据bs长度 选择放入各种pool中, 只有 cap(bs)>=1500 才会被处理
func PutBytes(bs []byte) {
	c := cap(bs)
	if c < StandardBytesLength {

		return
	} else if c >= StandardBytesLength && c < MaxBufLen {
		standardBytesPool.Put(bs[:StandardBytesLength])
	} else if c >= MaxBufLen {
		standardPacketPool.Put(bs[:MaxBufLen])
	}
}
