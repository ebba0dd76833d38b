package main

import (
	"fmt"

	"github.com/e1732a364fed/tun_simple/utils"
)

func init() {

	cliCmdList = append(cliCmdList, &CliCmd{
		"自动执行上面提示过的路由命令(root)", func() {

			if len(manualRunCmdsList) == 0 {
				fmt.Println("没有待执行的命令")
				return
			}

			if e := utils.ExecCmdList(manualRunCmdsList); e != nil {
				fmt.Println("执行失败,", e)
				return
			}

			fmt.Println("执行完毕")
		},
	})
}
