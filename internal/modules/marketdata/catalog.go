package marketdata

// Asset is a named entry in the selectable asset catalog.
type Asset struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Type   string `json:"type"` // index, stock, commodity
}

// Catalog maps friendly asset names to provider symbols. Carried over from
// the dashboard's asset selector.
var Catalog = []Asset{
	// Nifty indices
	{Name: "NIFTY 50 Index", Symbol: "^NSEI", Type: "index"},
	{Name: "NIFTY Bank Index", Symbol: "^NSEBANK", Type: "index"},
	{Name: "NIFTY IT Index", Symbol: "^CNXIT", Type: "index"},

	// Top Nifty stocks
	{Name: "TCS", Symbol: "TCS.NS", Type: "stock"},
	{Name: "Infosys", Symbol: "INFY.NS", Type: "stock"},
	{Name: "HDFC Bank", Symbol: "HDFCBANK.NS", Type: "stock"},
	{Name: "ICICI Bank", Symbol: "ICICIBANK.NS", Type: "stock"},
	{Name: "Reliance", Symbol: "RELIANCE.NS", Type: "stock"},
	{Name: "Axis Bank", Symbol: "AXISBANK.NS", Type: "stock"},
	{Name: "Maruti", Symbol: "MARUTI.NS", Type: "stock"},
	{Name: "ITC", Symbol: "ITC.NS", Type: "stock"},
	{Name: "Bajaj Finance", Symbol: "BAJAJFINSV.NS", Type: "stock"},
	{Name: "Wipro", Symbol: "WIPRO.NS", Type: "stock"},
	{Name: "Kotak Bank", Symbol: "KOTAKBANK.NS", Type: "stock"},
	{Name: "State Bank of India", Symbol: "SBIN.NS", Type: "stock"},
	{Name: "Larsen & Toubro", Symbol: "LT.NS", Type: "stock"},
	{Name: "Hindustan Unilever", Symbol: "HINDUNILVR.NS", Type: "stock"},
	{Name: "Asian Paints", Symbol: "ASIANPAINT.NS", Type: "stock"},

	// International indices
	{Name: "S&P 500", Symbol: "^GSPC", Type: "index"},
	{Name: "NASDAQ", Symbol: "^IXIC", Type: "index"},
	{Name: "Dow Jones", Symbol: "^DJI", Type: "index"},
	{Name: "Russell 2000", Symbol: "^RUT", Type: "index"},

	// Commodities
	{Name: "Gold", Symbol: "GC=F", Type: "commodity"},
	{Name: "Silver", Symbol: "SI=F", Type: "commodity"},
	{Name: "Crude Oil", Symbol: "CL=F", Type: "commodity"},
	{Name: "Natural Gas", Symbol: "NG=F", Type: "commodity"},
	{Name: "Copper", Symbol: "HG=F", Type: "commodity"},
	{Name: "Aluminum", Symbol: "ALI=F", Type: "commodity"},
}
