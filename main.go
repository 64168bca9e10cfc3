package main

import (
	"flag"
	_ "net/http/pprof"

	"github.com/labelchain/LabelChain/api/router"
	"github.com/labelchain/LabelChain/app"
	"github.com/labelchain/LabelChain/config"
	"github.com/labelchain/LabelChain/service/svc"
)

const (
	defaultConfigPath = "./config/config.toml"
)

func main() {
	conf := flag.String("conf", defaultConfigPath, "conf file path")
	flag.Parse()
	c, err := config.UnmarshalConfig(*conf)
	if err != nil {
		panic(err)
	}

	if c.Chain.ChainID == 0 || c.Chain.RPCEndpoint == "" {
		panic("invalid chain config")
	}
	if c.Chain.PlatformWallet == "" {
		panic("platform wallet is not configured")
	}

	serverCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	r := router.NewRouter(serverCtx)

	app, err := app.NewPlatform(c, r, serverCtx)
	if err != nil {
		panic(err)
	}
	app.Start()
}
