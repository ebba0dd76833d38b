package tun_simple

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/yl2chen/cidranger"
	"go.uber.org/atomic"
)

// GlobalInfo 保存自启动以来的全局统计。没有静态变量, 统计都挂在 Daemon 上。
type GlobalInfo struct {
	PacketsReadSinceStart    atomic.Uint64 //从tun读到的
	BytesReadSinceStart      atomic.Uint64
	PacketsWrittenSinceStart atomic.Uint64 //写进tun的
	BytesWrittenSinceStart   atomic.Uint64
	UnknownFamilyPackets     atomic.Uint64 //af认不出 或 连af头都不完整的
}

// prefixEntry 实现 cidranger.RangerEntry, 给一个前缀挂上计数器
type prefixEntry struct {
	ipnet   net.IPNet
	packets atomic.Uint64
	bytes   atomic.Uint64
}

func (pe *prefixEntry) Network() net.IPNet {
	return pe.ipnet
}

// TrafficMeter 按CIDR前缀给流量记账。
//
// 查找走 PC-trie, 每个packet查一次也不心疼; 交互模式可以在运行中追加前缀,
// 所以插入和查找之间要上读写锁。
type TrafficMeter struct {
	sync.RWMutex

	ranger  cidranger.Ranger
	entries []*prefixEntry
}

func NewTrafficMeter() *TrafficMeter {
	return &TrafficMeter{
		ranger: cidranger.NewPCTrieRanger(),
	}
}

// AddPrefix 注册一个要记账的前缀。重复注册同一前缀无事发生, 老计数保留。
func (tm *TrafficMeter) AddPrefix(ipnet *net.IPNet) {
	tm.Lock()
	defer tm.Unlock()

	for _, pe := range tm.entries {
		if pe.ipnet.String() == ipnet.String() {
			return
		}
	}

	pe := &prefixEntry{ipnet: *ipnet}
	tm.ranger.Insert(pe)
	tm.entries = append(tm.entries, pe)
}

func (tm *TrafficMeter) PrefixCount() int {
	tm.RLock()
	defer tm.RUnlock()
	return len(tm.entries)
}

// Record 给每个包含dst的前缀记上一个包和n个字节; dst不在任何前缀里时无事发生。
func (tm *TrafficMeter) Record(dst net.IP, n int) {
	tm.RLock()
	defer tm.RUnlock()

	containing, err := tm.ranger.ContainingNetworks(dst)
	if err != nil {
		return
	}
	for _, e := range containing {
		if pe, ok := e.(*prefixEntry); ok {
			pe.packets.Inc()
			pe.bytes.Add(uint64(n))
		}
	}
}

func (tm *TrafficMeter) PrintTo(w io.Writer) {
	tm.RLock()
	defer tm.RUnlock()

	for i, pe := range tm.entries {
		fmt.Fprintln(w, "route", i, pe.ipnet.String(), "packets", pe.packets.Load(), "bytes", pe.bytes.Load())
	}
}
