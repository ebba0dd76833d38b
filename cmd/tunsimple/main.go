package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"runtime/pprof"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	tun_simple "github.com/e1732a364fed/tun_simple"
	"github.com/e1732a364fed/tun_simple/utils"
)

var (
	configFileName string
	startPProf     bool
	startMProf     bool

	mainM = tun_simple.NewDaemon()
)

const (
	defaultConfFn = "tun.toml"

	willExitStr = "No valid tun interface settings available, nor cli running. Exit now.\n"
)

func init() {
	flag.StringVar(&configFileName, "c", defaultConfFn, "config file name")
	flag.BoolVar(&startPProf, "pp", false, "pprof")
	flag.BoolVar(&startMProf, "mp", false, "memory pprof")
}

//我们 在程序关闭时, 主动Stop, 把建出来的tun接口销毁掉
func cleanup() {
	mainM.Stop()
}

func main() {
	os.Exit(mainFunc())
}

func mainFunc() (result int) {
	defer func() {
		if r := recover(); r != nil {
			if ce := utils.CanLogErr("Captured panic!"); ce != nil {

				stack := debug.Stack()

				stackStr := string(stack)

				ce.Write(
					zap.Any("err:", r),
					zap.String("stacktrace", stackStr),
				)

				log.Println(stackStr) //因为 zap 使用json存储值，所以stack这种多行字符串里的换行符和tab 都被转译了，导致可读性比较差，所以还是要 log单独打印出来，可增强命令行的可读性

			} else {
				log.Println("panic captured!", r, "\n", string(debug.Stack()))
			}

			result = -3

			cleanup()
		}
	}()

	utils.ParseFlags()

	if runExitCommands() {
		return
	} else {
		printVersion(os.Stdout)

	}

	if startPProf {
		const pprofFN = "cpu.pprof"
		f, err := os.OpenFile(pprofFN, os.O_CREATE|os.O_RDWR, 0644)

		if err == nil {
			defer f.Close()
			err = pprof.StartCPUProfile(f)
			if err == nil {
				defer pprof.StopCPUProfile()
			} else {
				log.Println("pprof.StartCPUProfile failed", err)

			}
		} else {
			log.Println(pprofFN, "can't be created,", err)
		}

	}
	if startMProf {
		//若不使用 NoShutdownHook, 则 我们ctrl+c退出时不会产生 pprof文件
		p := profile.Start(profile.MemProfile, profile.MemProfileRate(1), profile.NoShutdownHook)

		defer p.Stop()
	}

	var loadConfigErr error

	fpath := utils.GetFilePath(configFileName)
	if !utils.FileExist(fpath) {

		if !utils.IsFlagGiven("c") {
			log.Printf("No -c provided and default %q doesn't exist", defaultConfFn)
		} else {
			log.Printf("-c provided but %q doesn't exist", configFileName)
		}

		loadConfigErr = os.ErrNotExist

	} else {
		//配置里的 loglevel/logfile 在这一步 跟命令行参数作优先级对比
		loadConfigErr = mainM.LoadConfFile(configFileName)
	}

	utils.InitLog("Program started")
	defer utils.Info("Program exited")

	{
		wdir, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		if ce := utils.CanLogInfo("Working at"); ce != nil {
			ce.Write(zap.String("dir", wdir))
		}
	}
	if ce := utils.CanLogDebug("All Given Flags"); ce != nil {
		ce.Write(zap.Any("flags", utils.GivenFlagKVs()))
	}

	if loadConfigErr != nil && !isFlexible() {

		if ce := utils.CanLogErr(willExitStr); ce != nil {
			ce.Write(zap.Error(loadConfigErr))
		} else {
			log.Print(willExitStr)

		}

		return -1
	}

	fmt.Printf("Log Level:%d\n", utils.LogLevel)

	if loadConfigErr == nil {

		if err := mainM.Start(); err != nil {

			if ce := utils.CanLogErr("can not start the tun daemon"); ce != nil {
				ce.Write(zap.Error(err))
			}

			if !isFlexible() {
				return -1
			}

		} else {
			promptManualRoutes()
		}

	}

	if interactive_mode {
		runCli()

		interactive_mode = false
	}

	if cliQuit || !mainM.IsRunning() {
		if !mainM.IsRunning() {
			utils.Warn(willExitStr)
		}
		cleanup()
		return
	}

	{
		<-utils.GetSystemKillChan()

		utils.Info("Program got close signal.")

		cleanup()
	}
	return
}
