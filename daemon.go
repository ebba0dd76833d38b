package tun_simple

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/e1732a364fed/tun_simple/tunLayer"
	"github.com/e1732a364fed/tun_simple/utils"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

/*
Daemon 把一个tun接口的完整生命周期包装起来，对外像一个黑盒子。

关键点是不使用任何静态变量，所有变量都放在 Daemon 中; 配置、统计、接口把手
都在这一个结构里, 可执行文件或测试代码 new 一个就能跑。
*/
type Daemon struct {
	Conf
	GlobalInfo
	sync.RWMutex

	tunif       *tunLayer.Tunif
	routeClient *tunLayer.RouteClient
	meter       *TrafficMeter

	running bool
}

func NewDaemon() *Daemon {
	return &Daemon{
		meter: NewTrafficMeter(),
	}
}

func (d *Daemon) IsRunning() bool {
	d.RLock()
	defer d.RUnlock()
	return d.running
}

// InterfaceName 返回内核实际给的接口名; 没在运行时返回空字符串。
func (d *Daemon) InterfaceName() string {
	d.RLock()
	defer d.RUnlock()

	if d.tunif == nil {
		return ""
	}
	return d.tunif.Name()
}

func (d *Daemon) LoadConfByTomlBytes(bs []byte) (err error) {
	var conf Conf
	conf, err = LoadConfFromTomlBytes(bs)
	if err != nil {
		log.Printf("can not load standard config file: %v\n", err)
		return
	}
	if err = conf.Verify(); err != nil {
		return
	}

	d.Conf = conf

	if conf.App != nil {
		conf.App.Setup()
	}
	return
}

func (d *Daemon) LoadConfFile(configFileName string) (err error) {
	var conf Conf
	conf, err = LoadConfFile(configFileName)
	if err != nil {
		return
	}
	if err = conf.Verify(); err != nil {
		return
	}

	d.Conf = conf

	if conf.App != nil {
		conf.App.Setup()
	}
	return
}

// Start 创建tun接口, 注入配置的路由, 然后启动监视循环。
// 已在运行时再Start无事发生。中途失败的话, 已建出来的接口会被尽力清掉。
func (d *Daemon) Start() error {
	d.Lock()
	defer d.Unlock()

	if d.running {
		return nil
	}

	if d.meter == nil {
		d.meter = NewTrafficMeter()
	}

	if err := d.Conf.Verify(); err != nil {
		return err
	}

	utils.Info("Starting...")

	tunif, err := tunLayer.Create(d.Interface.Name)
	if err != nil {
		return err
	}

	name := tunif.Name()

	if ce := utils.CanLogInfo("tun interface created"); ce != nil {
		ce.Write(zap.String("name", name))
	}

	// MTU调不动不影响接口已经建好, 只记一笔
	if mtu := d.Interface.MTU; mtu > 0 {
		if err := tunLayer.SetMTU(name, mtu); err != nil {
			if ce := utils.CanLogWarn("failed to set mtu"); ce != nil {
				ce.Write(zap.String("name", name), zap.Error(err))
			}
		}
	}

	rc := tunLayer.NewRouteClient(name)

	for _, r := range d.Routes {
		if err := d.addRouteOf(rc, r); err != nil {
			tunif.Close()
			if e := tunLayer.Destroy(name); e != nil {
				if ce := utils.CanLogWarn("failed to clean up the tun interface"); ce != nil {
					ce.Write(zap.String("name", name), zap.Error(e))
				}
			}
			return err
		}
	}

	d.tunif = tunif
	d.routeClient = rc
	d.running = true

	go d.monitorPump(tunif)

	return nil
}

func (d *Daemon) addRouteOf(rc *tunLayer.RouteClient, r *RouteConf) error {
	ipnet, err := r.Prefix()
	if err != nil {
		return err
	}

	af, addr, prefixLen := routeDest(ipnet)

	if err = rc.AddRoute(af, addr, prefixLen); err != nil {
		return utils.ErrInErr{ErrDesc: "failed to add route", ErrDetail: err, Data: r.To}
	}

	d.meter.AddPrefix(ipnet)
	return nil
}

// AddRoute 运行中追加一条路由并纳入记账, 交互模式用。
func (d *Daemon) AddRoute(to string) error {
	d.Lock()
	defer d.Unlock()

	if !d.running {
		return errors.New("daemon is not running")
	}

	r := &RouteConf{To: to}
	if err := d.addRouteOf(d.routeClient, r); err != nil {
		return err
	}
	d.Routes = append(d.Routes, r)
	return nil
}

// SendPacket 给payload包上af头后写进tun接口, 一次写整个packet。
func (d *Daemon) SendPacket(af uint32, payload []byte) error {
	d.RLock()
	tunif := d.tunif
	d.RUnlock()

	if tunif == nil {
		return errors.New("daemon is not running")
	}

	var head [tunLayer.HeaderLen]byte
	if err := tunLayer.EncodeAddressFamily(head[:], af); err != nil {
		return err
	}

	buf := utils.GetBuf()
	defer utils.PutBuf(buf)
	buf.Write(head[:])
	buf.Write(payload)

	n, err := tunif.Write(buf.Bytes())
	if err != nil {
		return utils.ErrInErr{ErrDesc: "failed to write to tun", ErrDetail: err}
	}
	if n != buf.Len() {
		return utils.ErrInErr{ErrDesc: "failed to write to tun", ErrDetail: utils.ErrShortWrite, Data: n}
	}

	d.PacketsWrittenSinceStart.Inc()
	d.BytesWrittenSinceStart.Add(uint64(n))
	return nil
}

// Stop 关闭设备文件(监视循环随之退出), 然后销毁接口。没在运行时无事发生。
//
// 注入过的路由不收回: 本包没有删路由的能力, 好在接口一销毁,
// 指向它的路由也就跟着失效了。
func (d *Daemon) Stop() {
	d.Lock()
	defer d.Unlock()

	if !d.running {
		return
	}

	utils.Info("Stopping...")

	d.running = false

	if d.tunif != nil {
		name := d.tunif.Name()
		d.tunif.Close()

		// 销毁失败只上报, 不翻盘; 该关的都已经关了
		if err := tunLayer.Destroy(name); err != nil {
			if ce := utils.CanLogWarn("failed to destroy the tun interface"); ce != nil {
				ce.Write(zap.String("name", name), zap.Error(err))
			}
		}

		d.tunif = nil
	}
	d.routeClient = nil
}

// 监视循环: 读一个packet, 解出af, 按目的地址记账, 然后把包丢掉。
// 循环退出的正常方式就是 Stop 把文件关掉。
func (d *Daemon) monitorPump(tunif *tunLayer.Tunif) {
	for {
		packet := utils.GetPacket()

		n, err := tunif.Read(packet)
		if err != nil {
			utils.PutPacket(packet)

			if errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF) {
				utils.Debug("tun monitor exited")
			} else if ce := utils.CanLogErr("read from tun failed"); ce != nil {
				ce.Write(zap.Error(err))
			}
			return
		}

		d.PacketsReadSinceStart.Inc()
		d.BytesReadSinceStart.Add(uint64(n))

		if n < tunLayer.HeaderLen {
			d.UnknownFamilyPackets.Inc()
			utils.PutPacket(packet)
			continue
		}

		af := tunLayer.DecodeAddressFamily(packet[:n])
		payload := packet[tunLayer.HeaderLen:n]

		if dst := packetDst(af, payload); dst != nil {
			d.meter.Record(dst, len(payload))
		} else {
			d.UnknownFamilyPackets.Inc()
		}

		utils.PutPacket(packet)
	}
}

func (d *Daemon) PrintAllState(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	d.RLock()
	defer d.RUnlock()

	fmt.Fprintln(w, "running", d.running)
	if d.tunif != nil {
		fmt.Fprintln(w, "interface", d.tunif.Name())
	}
	fmt.Fprintln(w, "packetsReadSinceStart", d.PacketsReadSinceStart.Load())
	fmt.Fprintln(w, "bytesReadSinceStart", d.BytesReadSinceStart.Load())
	fmt.Fprintln(w, "packetsWrittenSinceStart", d.PacketsWrittenSinceStart.Load())
	fmt.Fprintln(w, "bytesWrittenSinceStart", d.BytesWrittenSinceStart.Load())
	fmt.Fprintln(w, "unknownFamilyPackets", d.UnknownFamilyPackets.Load())

	if d.meter != nil {
		d.meter.PrintTo(w)
	}
}

// 从ParseCIDR的结果里取出 AddRoute 要的三元组
func routeDest(ipnet *net.IPNet) (af uint32, addr []byte, prefixLen int) {
	prefixLen, _ = ipnet.Mask.Size()

	if ip4 := ipnet.IP.To4(); ip4 != nil {
		return unix.AF_INET, ip4, prefixLen
	}
	return unix.AF_INET6, ipnet.IP.To16(), prefixLen
}

// packetDst 从IP头里抠出目的地址; 不是v4/v6或者头不完整就返回nil。
func packetDst(af uint32, payload []byte) net.IP {
	switch af {
	case unix.AF_INET:
		if len(payload) >= 20 {
			return net.IP(payload[16:20])
		}
	case unix.AF_INET6:
		if len(payload) >= 40 {
			return net.IP(payload[24:40])
		}
	}
	return nil
}
