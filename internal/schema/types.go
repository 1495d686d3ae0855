package schema

// Finding categories as they appear in the Category column.
const (
	CategoryCVE        = "CVE"
	CategoryEncryption = "Encryption"
	CategoryKEX        = "KEX"
	CategoryKey        = "Key"
	CategoryMAC        = "MAC"
)

// SeverityInfo is the label every CVE finding carries.
const SeverityInfo = "info"

// Finding is one normalized row of the detailed report. All fields are
// plain strings so two findings compare equal exactly when every column does.
type Finding struct {
	Target      string `json:"target"`
	Category    string `json:"category"`
	Item        string `json:"item"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// AuditDocument is one host's ssh-audit JSON output. Only the keys the
// report consumes are decoded; everything else is ignored.
type AuditDocument struct {
	Target string                `json:"target"`
	CVEs   []CveDescriptor       `json:"cves"`
	Enc    []AlgorithmDescriptor `json:"enc"`
	Kex    []AlgorithmDescriptor `json:"kex"`
	Key    []AlgorithmDescriptor `json:"key"`
	Mac    []AlgorithmDescriptor `json:"mac"`
}

// AlgorithmDescriptor lists the notes ssh-audit attached to one algorithm,
// keyed by severity label (info, warn, fail, ...).
type AlgorithmDescriptor struct {
	Algorithm string              `json:"algorithm"`
	Notes     map[string][]string `json:"notes,omitempty"`
}

// CveDescriptor is a CVE matched against the server's software banner.
type CveDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
