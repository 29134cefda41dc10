package models

// Bot is the static descriptor of one legal-domain assistant. Exactly four
// bots exist, fixed at build time; each owns its own vector index and prompt.
type Bot struct {
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	Description    string `json:"description"`
	PromptTemplate string `json:"-"`
}

// Domain keys. Index directories are named {domain}_index under the vector
// store root, and source documents live under {documents_root}/{domain}.
const (
	DomainIPC          = "ipc"
	DomainRTI          = "rti"
	DomainLaborLaw     = "labor_law"
	DomainConstitution = "constitution"
)

// Domains lists all known domain keys in menu order (digit 1..4).
var Domains = []string{DomainIPC, DomainRTI, DomainLaborLaw, DomainConstitution}

// BotInfo is the availability view of a bot returned by the bots listing.
type BotInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// ValidDomain reports whether key names one of the four legal domains.
func ValidDomain(key string) bool {
	for _, d := range Domains {
		if d == key {
			return true
		}
	}
	return false
}
