// Package main 启动应用程序
package main

import "github.com/allservices/registry/pkg/cmd"

//	@title			Registry API
//	@version		1.0
//	@description	Registry 是一个软件产品注册与分发服务，提供产品目录、版本审核流水线、二进制清单装配与素材管理能力。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
