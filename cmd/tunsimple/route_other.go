//go:build !linux

package main

//bsd系在 Start 时就已通过 routing socket 把路由写进内核了, 无需提示手动命令.
func routeCmdSuggestions() []string {
	return nil
}
