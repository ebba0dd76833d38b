package tun_simple

import (
	"errors"
	"net"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/asaskevich/govalidator"
	"github.com/e1732a364fed/tun_simple/utils"
)

// Conf 是标准toml配置文件的完整结构, 由 [app], [interface], [[route]] 三部分组成
type Conf struct {
	App       *AppConf       `toml:"app"`
	Interface *InterfaceConf `toml:"interface"`
	Routes    []*RouteConf   `toml:"route"`
}

// AppConf 配置App级别的配置
type AppConf struct {
	LogLevel *int    `toml:"loglevel"` //需要为指针, 否则无法判断0到底是未给出的默认值还是 显式声明的0
	LogFile  *string `toml:"logfile"`
}

type InterfaceConf struct {
	Name string `toml:"name"` //请求的接口名; 实际名字以内核返回的为准
	MTU  int    `toml:"mtu"`  //可选, 0表示不动内核的默认值
}

// RouteConf 一条要导进tun接口的路由
type RouteConf struct {
	To string `toml:"to"` //CIDR, 比如 "198.51.100.0/24" 或 "2001:db8::/32"
}

// 命令行给出的flag 比 配置文件的值 优先
func (ac *AppConf) Setup() {
	if ac == nil {
		return
	}

	if ac.LogFile != nil && utils.GivenFlags["lf"] == nil {
		utils.LogOutFileName = *ac.LogFile

	}

	if ac.LogLevel != nil && utils.GivenFlags["ll"] == nil {
		utils.LogLevel = *ac.LogLevel

	}
}

// Prefix 把 to 解析成 net.IPNet. 地址的主机位会被内核忽略, 所以这里直接取网络号。
func (rc *RouteConf) Prefix() (*net.IPNet, error) {
	_, ipnet, err := net.ParseCIDR(rc.To)
	if err != nil {
		return nil, utils.ErrInErr{ErrDesc: "invalid route prefix", ErrDetail: err, Data: rc.To}
	}
	return ipnet, nil
}

// Verify 在碰任何设备之前检查配置: 接口名必须给出, 每条路由的to必须是合法CIDR.
func (c *Conf) Verify() error {
	if c.Interface == nil || c.Interface.Name == "" {
		return utils.ErrInErr{ErrDesc: "no interface name in config", ErrDetail: utils.ErrNilParameter}
	}
	if c.Interface.MTU < 0 {
		return utils.ErrInErr{ErrDesc: "invalid mtu in config", ErrDetail: utils.ErrWrongParameter, Data: c.Interface.MTU}
	}
	for _, r := range c.Routes {
		if r == nil || !govalidator.IsCIDR(r.To) {
			return utils.ErrInErr{ErrDesc: "route to is not a valid CIDR", ErrDetail: utils.ErrInvalidData, Data: r}
		}
	}
	return nil
}

func LoadConfFromTomlBytes(bs []byte) (conf Conf, err error) {
	err = toml.Unmarshal(bs, &conf)
	return
}

// LoadConfFile 按 utils.GetFilePath 的顺序找到配置文件并加载, 必须是 .toml 后缀.
func LoadConfFile(configFileName string) (conf Conf, err error) {
	fpath := utils.GetFilePath(configFileName)
	if fpath == "" {
		err = utils.ErrInErr{ErrDesc: "can not find the config file", ErrDetail: os.ErrNotExist, Data: configFileName}
		return
	}

	if ext := filepath.Ext(fpath); ext != ".toml" {
		err = errors.New("file passed in but no .toml suffix")
		return
	}

	var bs []byte
	bs, err = os.ReadFile(fpath)
	if err != nil {
		return
	}
	return LoadConfFromTomlBytes(bs)
}
