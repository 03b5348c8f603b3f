package cmd

import (
	"net/http"

	"github.com/masnyjimmy/wsparam/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a service definition and load posted payloads against it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, err := cmd.Flags().GetString("input")
		if err != nil {
			return err
		}
		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			return err
		}
		origins, err := cmd.Flags().GetStringSlice("cors-origin")
		if err != nil {
			return err
		}

		baseUrl, err := cmd.Flags().GetString("base-url")
		if err != nil {
			return err
		}

		opt := server.DefaultOptions()
		opt.AllowedOrigins = origins
		opt.BaseUrl = baseUrl

		return Serve(input, addr, opt)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("input", "i", "service.yaml", "Service definition file to watch")
	serveCmd.Flags().StringP("addr", "a", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", []string{"*"}, "Allowed CORS origins")
	serveCmd.Flags().String("base-url", "/", "Path prefix of every route")
}

func Serve(input, addr string, opt server.Options) error {
	catalog, err := readCatalog(input)
	if err != nil {
		return err
	}

	srv, err := server.New(catalog, opt, logger)
	if err != nil {
		return err
	}

	watcher, err := server.WatchFile(input, opt.DebounceTime)
	if err != nil {
		logger.Warn().Err(err).Msg("unable to watch for file updates")
	} else {
		defer watcher.Close()

		watchHandler := func() {
			for err := range watcher.Update {
				if err != nil {
					logger.Warn().Err(err).Msg("watch error")
					continue
				}

				catalog, err := readCatalog(input)
				if err != nil {
					logger.Error().Err(err).Msg("unable to reload definition")
					continue
				}

				if err := srv.SetCatalog(catalog); err != nil {
					logger.Error().Err(err).Msg("unable to update catalog")
					continue
				}

				logger.Info().Str("file", input).Msg("definition reloaded")
			}
		}
		go watchHandler()
	}

	logger.Info().Str("addr", addr).Str("service", catalog.Service).Msg("started server")
	return http.ListenAndServe(addr, srv.Handler(nil))
}
