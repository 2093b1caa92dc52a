package config

type Config struct {
	Elasticsearch struct {
		Enabled  bool   `json:"enabled"`
		Username string `json:"username"`
		Password string `json:"password"`
		Address  string `json:"address"`
	} `json:"elasticsearch"`

	Rod struct {
		UserDataDir          string `json:"user_data_dir"`
		Headless             bool   `json:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features"`
		Incognito            bool   `json:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox"`
		UserAgent            string `json:"user_agent"`
		Leakless             bool   `json:"leakless"`
		Bin                  string `json:"bin"`
	} `json:"rod"`

	Chromedp struct {
		LifeTime             int    `json:"life_time"`
		UserDataDir          string `json:"user_data_dir"`
		Headless             bool   `json:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features"`
		Incognito            bool   `json:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox"`
		UserAgent            string `json:"user_agent"`
	} `json:"chromedp"`

	Colly struct {
		AllowedDomains  []string `json:"allowed_domains"`
		MaxDepth        int      `json:"max_depth"`
		UserAgent       string   `json:"user_agent"`
		IgnoreRobotsTxt bool     `json:"ignore_robots_txt"`
		Delay           int      `json:"delay"`
		RandomDelay     int      `json:"random_delay"`
	} `json:"colly"`

	// Auditor holds everything specific to the county auditor's site:
	// the two URL shapes, the disclaimer button and the post-action
	// render delays. ParcelURLFormat takes one %s for the parcel number.
	Auditor struct {
		SearchResultsURL   string `json:"search_results_url"`
		ParcelURLFormat    string `json:"parcel_url_format"`
		DisclaimerButtonID string `json:"disclaimer_button_id"`
		PageLoadSeconds    int    `json:"page_load_seconds"`
		TabRenderSeconds   int    `json:"tab_render_seconds"`
	} `json:"auditor"`

	Scrape struct {
		Backend           string `json:"backend"` // "chromedp" or "rod"
		WindowSize        int    `json:"window_size"`
		StartOffset       int    `json:"start_offset"`
		ProjectName       string `json:"project_name"`
		DataDir           string `json:"data_dir"`
		ParcelNumbersFile string `json:"parcel_numbers_file"`
	} `json:"scrape"`
}
