package fetcher

// PageSpeed Insights v5 response models. Audits the API may omit are
// pointer-typed so extraction can nil-guard them.

type apiResponse struct {
	Error            *apiError         `json:"error"`
	LighthouseResult *lighthouseResult `json:"lighthouseResult"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lighthouseResult struct {
	Categories *categories       `json:"categories"`
	Audits     map[string]*audit `json:"audits"`
}

type categories struct {
	Performance *category `json:"performance"`
}

type category struct {
	Score *float64 `json:"score"`
}

type audit struct {
	NumericValue *float64      `json:"numericValue"`
	Details      *auditDetails `json:"details"`
}

type auditDetails struct {
	Items []auditItem `json:"items"`
}

type auditItem struct {
	Node  *auditNode `json:"node"`
	Score float64    `json:"score"`
}

type auditNode struct {
	Selector string `json:"selector"`
}

// Audit ids the extraction relies on.
const (
	auditCLS = "cumulative-layout-shift"
	auditLCP = "largest-contentful-paint"
	auditFID = "max-potential-fid"
	auditFCP = "first-contentful-paint"
	auditSI  = "speed-index"
	auditTBT = "total-blocking-time"
	auditTTI = "interactive"
)
