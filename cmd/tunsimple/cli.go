package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/asaskevich/govalidator"
	tun_simple "github.com/e1732a364fed/tun_simple"
	"github.com/e1732a364fed/tun_simple/utils"
	"github.com/manifoldco/promptui"
	"golang.org/x/sys/unix"
)

var cliQuit bool

var cliCmdList = []*CliCmd{
	{
		"交互生成配置", func() {
			generateConfigFileInteractively()
		},
	},
}

func init() {

	//cli.go 中定义的 CliCmd都是需进一步交互的命令

	cliCmdList = append(cliCmdList, &CliCmd{
		"启动tun接口", func() {
			interactively_start()
		},
	})
	cliCmdList = append(cliCmdList, &CliCmd{
		"停止tun接口", func() {
			interactively_stop()
		},
	})
	cliCmdList = append(cliCmdList, &CliCmd{
		"热添加一条路由", func() {
			interactively_addRoute()
		},
	})
	cliCmdList = append(cliCmdList, &CliCmd{
		"热加载配置文件", func() {
			interactively_hotLoadConfigFile()
		},
	})
	cliCmdList = append(cliCmdList, &CliCmd{
		"发送一个测试包", func() {
			interactively_sendTestPacket()
		},
	})
	cliCmdList = append(cliCmdList, &CliCmd{
		"调节日志等级", func() {
			interactively_adjust_loglevel()
		},
	})
	cliCmdList = append(cliCmdList, &CliCmd{
		"退出程序", func() {
			cliQuit = true
		},
	})

}

type CliCmd struct {
	Name string
	F    func()
}

func (cc CliCmd) String() string {
	return cc.Name
}

//交互式命令行用户界面
//
//阻塞，可按ctrl+C退出或回退到上一级
func runCli() {
	loadPreferences()

	defer func() {
		savePerferences()

		fmt.Printf("Interactive Mode exited. \n")
		if ce := utils.CanLogInfo("Interactive Mode exited"); ce != nil {
			ce.Write()
		}
	}()

	for {
		Select := promptui.Select{
			Label: "请选择想执行的功能",
			Items: cliCmdList,
		}

		i, result, err := Select.Run()

		if err != nil {
			fmt.Printf("Prompt failed %v\n", err)
			return
		}

		fmt.Printf("你选择了 %s\n", result)

		if f := cliCmdList[i].F; f != nil {
			f()
		}

		if cliQuit {
			return
		}

		if cp := currentUserPreference.Cli; cp != nil && cp.AutoArrange {
			updateMostRecentCli(i)
		}
	}

}

func interactively_start() {
	if mainM.IsRunning() {
		fmt.Printf("tun接口已经在运行了\n")
		return
	}

	if err := mainM.Start(); err != nil {
		fmt.Printf("启动失败,")
		utils.PrintStr(err.Error())
		fmt.Printf("\n")
		return
	}

	fmt.Printf("启动成功！接口名为 ")
	utils.PrintStr(mainM.InterfaceName())
	fmt.Printf("\n")

	promptManualRoutes()
}

func interactively_stop() {
	if !mainM.IsRunning() {
		fmt.Printf("tun接口没有在运行\n")
		return
	}

	mainM.Stop()

	fmt.Printf("停止成功！\n")
}

func interactively_addRoute() {
	if !mainM.IsRunning() {
		fmt.Printf("tun接口尚未运行, 请先启动\n")
		return
	}

	fmt.Printf("请输入你想添加的路由前缀(CIDR)\n")

	promptCIDR := promptui.Prompt{
		Label:    "CIDR",
		Validate: utils.WrapFuncForPromptUI(govalidator.IsCIDR),
	}

	result, err := promptCIDR.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	fmt.Printf("你输入了 %s\n", result)

	if err = mainM.AddRoute(result); err != nil {
		fmt.Printf("添加失败,")
		utils.PrintStr(err.Error())
		fmt.Printf("\n")
		return
	}

	fmt.Printf("添加成功！\n")

	promptManualRoutes()
}

//热加载配置文件, 加载成功后直接投入运行
func interactively_hotLoadConfigFile() {
	if mainM.IsRunning() {
		fmt.Printf("tun接口正在运行, 请先停止再热加载\n")
		return
	}

	fmt.Printf("请输入你想加载的文件名称\n")

	promptFile := promptui.Prompt{
		Label: "配置文件",
		Validate: func(s string) error {

			if err := utils.IsFilePath(s); err != nil {
				return err
			}
			if !utils.FileExist(utils.GetFilePath(s)) {
				return errors.New("文件不存在")
			}
			return nil
		},
	}

	fpath, err := promptFile.Run()

	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	fmt.Printf("你输入了 %s\n", fpath)

	if err = mainM.LoadConfFile(fpath); err != nil {
		log.Printf("can not load standard config file: %v\n", err)
		return
	}

	if err = mainM.Start(); err != nil {
		fmt.Println("启动失败,", err)
		return
	}

	promptManualRoutes()

	fmt.Printf("加载成功！接口名为 ")
	utils.PrintStr(mainM.InterfaceName())
	fmt.Printf("\n")
}

func interactively_sendTestPacket() {
	if !mainM.IsRunning() {
		fmt.Printf("tun接口尚未运行, 请先启动\n")
		return
	}

	Select := promptui.Select{
		Label: "请选择测试包的协议",
		Items: []string{"ipv4", "ipv6"},
	}

	i, result, err := Select.Run()

	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	fmt.Printf("你选择了 %s\n", result)

	var af uint32 = unix.AF_INET
	validate := govalidator.IsIPv4
	if i == 1 {
		af = unix.AF_INET6
		validate = govalidator.IsIPv6
	}

	fmt.Printf("请输入测试包的目的ip\n")

	promptIP := promptui.Prompt{
		Label:    "IP",
		Validate: utils.WrapFuncForPromptUI(validate),
	}

	result, err = promptIP.Run()
	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	fmt.Printf("你输入了 %s\n", result)

	if err = mainM.SendPacket(af, makeTestPacket(af, net.ParseIP(result))); err != nil {
		fmt.Printf("发送失败,")
		utils.PrintStr(err.Error())
		fmt.Printf("\n")
		return
	}

	fmt.Printf("发送成功！可用 【查询当前状态】 查看计数\n")
}

//造一个只有IP头的最小packet, 源和目的取同一个地址, 用于验证写入与计数
func makeTestPacket(af uint32, dst net.IP) []byte {
	if af == unix.AF_INET {
		b := make([]byte, 20)
		b[0] = 0x45
		b[3] = 20
		b[8] = 64  //ttl
		b[9] = 253 //protocol: use for experimentation and testing
		copy(b[12:16], dst.To4())
		copy(b[16:20], dst.To4())

		var sum uint32
		for i := 0; i < 20; i += 2 {
			sum += uint32(b[i])<<8 | uint32(b[i+1])
		}
		for sum > 0xffff {
			sum = (sum >> 16) + (sum & 0xffff)
		}
		sum = ^sum
		b[10] = byte(sum >> 8)
		b[11] = byte(sum)
		return b
	}

	b := make([]byte, 40)
	b[0] = 0x60
	b[6] = 59 //no next header
	b[7] = 64 //hop limit
	copy(b[8:24], dst.To16())
	copy(b[24:40], dst.To16())
	return b
}

func generateConfigFileInteractively() {

	rootLevelList := []string{
		"打印当前缓存的配置",
		"开始交互生成配置",
		"清除此次缓存的配置",
		"将该缓存的配置写到文件(" + defaultConfFn + ")",
		"将此次生成的配置投入运行（热加载）",
	}

	newConf := tun_simple.Conf{}

	var confStr string

	for {
		Select := promptui.Select{
			Label: "请选择想为你的配置文件做的事情",
			Items: rootLevelList,
		}

		i, result, err := Select.Run()

		if err != nil {
			fmt.Printf("Prompt failed %v\n", err)
			return
		}

		fmt.Printf("你选择了 %s\n", result)

		generateConfStr := func() {
			confStr, err = utils.GetPurgedTomlStr(newConf)
			if err != nil {
				log.Fatal(err)
			}
		}

		switch i {
		case 0: //print

			generateConfStr()

			fmt.Printf("#tun_simple标准配置\n")
			utils.PrintStr(confStr)
			fmt.Printf("\n")

		case 2: //clear
			newConf = tun_simple.Conf{}
			confStr = ""
		case 3: //output

			generateConfStr()

			var confFile *os.File
			confFile, err = os.OpenFile(defaultConfFn, os.O_WRONLY|os.O_CREATE, 0666)
			if err != nil {
				fmt.Println("Can't create "+defaultConfFn, err)
				return
			}
			confFile.WriteString(confStr)
			confFile.Close()

			fmt.Println("生成成功！请查看文件")
		case 4: //hot load
			if mainM.IsRunning() {
				fmt.Println("tun接口正在运行, 请先停止再热加载")
				continue
			}

			generateConfStr()

			if err = mainM.LoadConfByTomlBytes([]byte(confStr)); err != nil {
				fmt.Println("加载失败,", err)
				continue
			}
			if err = mainM.Start(); err != nil {
				fmt.Println("启动失败,", err)
				continue
			}

			promptManualRoutes()

			fmt.Printf("加载成功！你可以回退(ctrl+c)到上级来使用 【查询当前状态】来查询新的计数\n")

		case 1: //interactively generate

			fmt.Printf("请输入tun接口名(linux上可含 %%d 模板, 由内核选择序号)\n")

			promptName := promptui.Prompt{
				Label: "接口名",
				Validate: func(s string) error {
					if s == "" {
						return errors.New("empty name")
					}
					if len(s) >= 16 {
						return errors.New("name too long")
					}
					return nil
				},
			}

			result, err = promptName.Run()

			if err != nil {
				fmt.Printf("Prompt failed %v\n", err)
				return
			}

			fmt.Printf("你输入了 %s\n", result)

			newConf.Interface = &tun_simple.InterfaceConf{Name: result}

			var theInt int64

			validateMTU := func(input string) error {
				theInt, err = strconv.ParseInt(input, 10, 64)
				if err != nil || theInt < 0 || theInt > 65535 {
					return errors.New("Invalid number")
				}
				return nil
			}

			fmt.Printf("请输入mtu(0表示保持系统默认)\n")

			promptMTU := promptui.Prompt{
				Label:    "MTU",
				Validate: validateMTU,
			}

			_, err = promptMTU.Run()

			if err != nil {
				fmt.Printf("Prompt failed %v\n", err)
				return
			}

			fmt.Printf("你输入了 %d\n", theInt)

			newConf.Interface.MTU = int(theInt)

			promptCIDR := promptui.Prompt{
				Label:    "CIDR",
				Validate: utils.WrapFuncForPromptUI(govalidator.IsCIDR),
			}

			for {
				selectMore := promptui.Select{
					Label: "要添加一条指向该接口的路由吗",
					Items: []string{
						"添加",
						"不了",
					},
				}

				im, _, err := selectMore.Run()

				if err != nil {
					fmt.Printf("Prompt failed %v\n", err)
					return
				}
				if im != 0 {
					break
				}

				result, err = promptCIDR.Run()
				if err != nil {
					fmt.Printf("Prompt failed %v\n", err)
					return
				}

				fmt.Printf("你输入了 %s\n", result)

				newConf.Routes = append(newConf.Routes, &tun_simple.RouteConf{To: result})
			}

		} // switch i case 1
	} //for
}

func interactively_adjust_loglevel() {
	fmt.Println("当前日志等级为：", utils.LogLevelStr(utils.LogLevel))

	list := utils.LogLevelStrList()
	Select := promptui.Select{
		Label: "请选择你调节为点loglevel",
		Items: list,
	}

	i, result, err := Select.Run()

	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	fmt.Printf("你选择了 %s\n", result)

	if i < len(list) && i >= 0 {
		utils.LogLevel = i
		utils.InitLog("")

		fmt.Printf("调节 日志等级完毕. 现在等级为\n")
		utils.PrintStr(list[i])
		fmt.Printf("\n")

	}
}
