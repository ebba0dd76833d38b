package main

//linux上改内核路由表走的是netlink, 本作没有内置它, 只把现成的 ip 命令列出来;
//参考 https://github.com/xjasonlyu/tun2socks/wiki/Examples 也是让用户这样手动配置的.
func routeCmdSuggestions() (strs []string) {
	name := mainM.InterfaceName()
	if name == "" {
		return
	}

	for _, r := range mainM.Routes {
		if r == nil {
			continue
		}
		strs = append(strs, "ip route add "+r.To+" dev "+name)
	}
	return
}
