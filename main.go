package main

import (
	"embed"
	"os"

	"filetug/internal/application"
	"filetug/internal/config"
	"filetug/internal/container"
	"filetug/internal/transport"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.New(config.NewViper())
	if err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}

	c, err := container.New(cfg)
	if err != nil {
		cfg.Logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Create an instance of the app structure
	app := application.NewApp(c)

	// Create application with options
	err = wails.Run(&options.App{
		Title:  application.WindowTitle,
		Width:  application.WindowWidth,
		Height: application.WindowHeight,

		AssetServer: &assetserver.Options{
			Assets:  assets,
			Handler: transport.NewThumbnailHandler(c.GetThumbnailService(), cfg.Logger),
		},

		OnStartup:  app.OnStartup,
		OnShutdown: app.OnShutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
