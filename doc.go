/*
Package tun_simple provides a simple way to own a tun interface.

# Structure 本项目结构

utils -> tunLayer -> tun_simple -> cmd/tunsimple

根项目 tun_simple 研究的是 把 tunLayer 的三件事(建接口 / af头编解码 / 加路由)
组装成一个可以长期运行的 Daemon: 读取toml配置, 创建接口并注入路由, 然后用一个
监视循环 读包、解出 address family、按配置的前缀给流量记账。

tunLayer 只管单个动作, 不管组装; cmd/tunsimple 只管 flag、交互模式 这些与人
打交道的部分。

# Chain

具体调用链是 Daemon.Start -> tunLayer.Create ( -> tunLayer.SetMTU ) ->
RouteClient.AddRoute (每条配置的路由) -> 「 monitorPump ->
{ tunLayer.DecodeAddressFamily , TrafficMeter.Record } 」

Daemon.Stop 则是 关闭设备文件(监视循环随之退出) -> tunLayer.Destroy.

监视循环只记账, 不转发也不改写任何packet; 转发属于真正的translator, 不属于本项目。
*/
package tun_simple
