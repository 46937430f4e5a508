package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	BaseURL  string `long:"base-url" env:"BREWERY_API_BASE_URL" description:"Open Brewery DB base URL" default:"https://api.openbrewerydb.org/v1"`
	Mode     string `long:"mode" env:"FETCH_MODE" description:"Fetch mode: single | all" choice:"single" choice:"all" default:"all"`
	PerPage  int    `long:"per-page" env:"PER_PAGE" description:"Records per upstream request (1-200)" default:"50"`
	MaxPages int    `long:"max-pages" env:"MAX_PAGES" description:"Upper bound on pages fetched in all mode" default:"1000"`
	Retries  int    `long:"retries" env:"FETCH_RETRIES" description:"Retries per page on transport failure" default:"3"`
	Timeout  string `long:"timeout" env:"FETCH_TIMEOUT" description:"Per-request timeout" default:"10s"`
	Format   string `long:"format" description:"Output format: text | json | yaml" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Verbose  bool   `long:"verbose" short:"v" description:"Log requests to stderr"`
}

// StatsCommand prints the summary statistics.
type StatsCommand struct {
	rt *runtime
}

// ListCommand prints the visible breweries for a search and type filter.
type ListCommand struct {
	Search  string `long:"search" short:"s" description:"Case-insensitive name substring"`
	Type    string `long:"type" short:"t" description:"Brewery type (empty for all types)"`
	Page    int    `long:"page" description:"1-based list page" default:"1"`
	PerPage int    `long:"page-size" description:"Breweries per list page" default:"20"`

	rt *runtime
}

// ShowCommand prints one brewery by ID.
type ShowCommand struct {
	ID string `long:"id" description:"Brewery ID" required:"true"`

	rt *runtime
}

// ChartsCommand prints the type and state distributions as bar charts.
type ChartsCommand struct {
	rt *runtime
}

// TypesCommand prints the type selector options.
type TypesCommand struct {
	rt *runtime
}

// TUICommand starts the interactive terminal dashboard.
type TUICommand struct {
	rt *runtime
}
