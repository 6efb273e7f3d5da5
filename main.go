package main

import "github.com/killallgit/seispick/cmd"

// @title           Seismic Pick Review API
// @version         1.0.0
// @description     Serves seismic event waveforms and review pages and records analyst picks.
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/seispick
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
