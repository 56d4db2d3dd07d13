// hub-mock runs the fixture forge standalone so specs can be debugged
// interactively against a stable instance instead of the per-run embedded one.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/a5c-ai/hub-e2e/internal/forge"
)

var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:     "hub-mock",
	Short:   "Run the hub fixture forge for E2E spec development",
	Long:    "Serves the fixture forge (pages plus /api/v1) with deterministic seed data.\nPoint BASE_URL at it to run the E2E suite against a long-lived instance.",
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	RunE:    runServe,
}

func init() {
	rootCmd.Flags().String("addr", ":3000", "listen address")
	rootCmd.Flags().String("session-secret", "", "session signing secret (random when empty)")

	viper.SetEnvPrefix("HUB_MOCK")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("addr", rootCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("session_secret", rootCmd.Flags().Lookup("session-secret"))
}

func runServe(cmd *cobra.Command, args []string) error {
	var secret []byte
	if s := viper.GetString("session_secret"); s != "" {
		secret = []byte(s)
	}
	srv := forge.New(forge.Options{SessionSecret: secret})

	addr := viper.GetString("addr")
	log.Printf("hub-mock: fixture forge listening on %s", addr)
	log.Printf("hub-mock: sign in with test@example.com / TestPassword123!")
	return http.ListenAndServe(addr, srv.Handler())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
