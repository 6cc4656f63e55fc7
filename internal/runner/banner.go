package runner

import (
	"github.com/projectdiscovery/gologger"
)

var banner = `
    __                    _     __
   / /___ _____  ____ _  (_)___/ /
  / / __ ` + "`" + `/ __ \/ __ ` + "`" + `/ / / __  /
 / / /_/ / / / / /_/ / / / /_/ /
/_/\__,_/_/ /_/\__, / /_/\__,_/
              /____/
`

var version = "v0.1.0"

// ProcessorName identifies langid in document provenance
const ProcessorName = "langid"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tn-gram language identification\n\n")
}
