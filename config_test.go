package tun_simple

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/e1732a364fed/tun_simple/utils"
)

func TestLoadTomlConf(t *testing.T) {

	conf, err := LoadConfFromTomlBytes([]byte(testTomlConfStr))
	if err != nil {
		t.Log(err)
		t.FailNow()
	}

	t.Log(conf)

	if conf.App == nil || conf.App.LogLevel == nil || *conf.App.LogLevel != 1 {
		t.FailNow()
	}
	if conf.Interface == nil || conf.Interface.Name != "tun%d" || conf.Interface.MTU != 1400 {
		t.FailNow()
	}
	if len(conf.Routes) != 2 {
		t.FailNow()
	}
	t.Log("route0", conf.Routes[0].To)
	t.Log("route1", conf.Routes[1].To)

	if err = conf.Verify(); err != nil {
		t.Log(err)
		t.FailNow()
	}

	ipnet, err := conf.Routes[0].Prefix()
	if err != nil {
		t.FailNow()
	}
	if ipnet.String() != "10.11.0.0/16" {
		t.Log("got", ipnet.String())
		t.FailNow()
	}

	ipnet, err = conf.Routes[1].Prefix()
	if err != nil {
		t.FailNow()
	}
	if ipnet.String() != "2001:db8::/32" {
		t.Log("got", ipnet.String())
		t.FailNow()
	}
}

func TestVerifyBadConf(t *testing.T) {

	// 没有 interface 段
	conf, err := LoadConfFromTomlBytes([]byte(`
[[route]]
to = "10.0.0.0/8"
`))
	if err != nil {
		t.FailNow()
	}
	if err = conf.Verify(); err == nil {
		t.Fail()
	} else {
		t.Log(err)
	}

	conf, err = LoadConfFromTomlBytes([]byte(`
[interface]
name = "tun0"
mtu = -1
`))
	if err != nil {
		t.FailNow()
	}
	if err = conf.Verify(); err == nil {
		t.Fail()
	} else {
		t.Log(err)
	}

	conf, err = LoadConfFromTomlBytes([]byte(`
[interface]
name = "tun0"

[[route]]
to = "10.0.0.1"
`))
	if err != nil {
		t.FailNow()
	}
	if err = conf.Verify(); err == nil {
		t.Fail()
	} else {
		t.Log(err)
	}
}

func TestLoadConfFile(t *testing.T) {

	dir := t.TempDir()

	fn := filepath.Join(dir, "t.toml")
	if err := os.WriteFile(fn, []byte(testTomlConfStr), 0644); err != nil {
		t.FailNow()
	}

	conf, err := LoadConfFile(fn)
	if err != nil {
		t.Log(err)
		t.FailNow()
	}
	if conf.Interface.Name != "tun%d" {
		t.FailNow()
	}

	// 后缀不对要报错
	fn = filepath.Join(dir, "t.json")
	if err := os.WriteFile(fn, []byte("{}"), 0644); err != nil {
		t.FailNow()
	}
	if _, err = LoadConfFile(fn); err == nil {
		t.Fail()
	} else {
		t.Log(err)
	}

	if _, err = LoadConfFile(filepath.Join(dir, "nothere.toml")); err == nil {
		t.Fail()
	} else {
		t.Log(err)
	}
}

// 命令行给过的 flag 要压过配置文件
func TestAppConfSetup(t *testing.T) {

	oldLL := utils.LogLevel
	oldLF := utils.LogOutFileName
	oldGiven := utils.GivenFlags
	defer func() {
		utils.LogLevel = oldLL
		utils.LogOutFileName = oldLF
		utils.GivenFlags = oldGiven
	}()

	ll := utils.Log_debug
	lf := "t.log"
	ac := &AppConf{LogLevel: &ll, LogFile: &lf}

	utils.GivenFlags = map[string]*flag.Flag{}
	ac.Setup()
	if utils.LogLevel != utils.Log_debug || utils.LogOutFileName != "t.log" {
		t.FailNow()
	}

	utils.LogLevel = utils.Log_fatal
	utils.GivenFlags = map[string]*flag.Flag{"ll": {Name: "ll"}}
	ac.Setup()
	if utils.LogLevel != utils.Log_fatal {
		t.FailNow()
	}
	if utils.LogOutFileName != "t.log" {
		t.FailNow()
	}

	var nilAc *AppConf
	nilAc.Setup()
}

const testTomlConfStr = `# this is a tun_simple standard config

[app]
loglevel = 1

[interface]
name = "tun%d"
mtu = 1400

[[route]]
to = "10.11.0.0/16"

[[route]]
to = "2001:db8::/32"
`
