package app

import "github.com/spf13/pflag"

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")

	flags.String("github-token", "", "GitHub personal access token")
	flags.String("github-api-base", "", "GitHub API base URL (for GitHub Enterprise or a mock server)")
	flags.String("github-raw-host", "", "Raw content host used in download URLs")
	flags.StringSlice("github-extensions", nil, "Default scan extension allow-list (comma-separated)")

	flags.Bool("smtp-enabled", false, "Enable the email notification channel")
	flags.String("smtp-host", "", "SMTP server host")
	flags.Int("smtp-port", 0, "SMTP server port")
	flags.String("smtp-from", "", "Email sender address")
	flags.String("smtp-username", "", "SMTP username")
	flags.String("smtp-password", "", "SMTP password")
	flags.StringSlice("smtp-recipients", nil, "Default digest recipients (comma-separated)")
}
