package mdl

// Repository answers lookups against a loaded malware domain list
type Repository interface {
	SearchIP(addr string) (Record, bool)
	SearchDomainForward(domain string) []Record
	SearchDomainReverse(domain string) []Record
	SearchDomain(domain string, mode DomainMode) ([]Record, error)
}

// Record is a single row of the malware domain list. Every field holds the
// raw string found in the CSV.
type Record struct {
	Date        string `json:"date"`
	Domain      string `json:"domain"`
	IP          string `json:"ip"`
	Reverse     string `json:"reverse"`
	Description string `json:"description"`
	Registrant  string `json:"registrant"`
	ASN         string `json:"asn"`
	Inactive    string `json:"inactive"`
	Country     string `json:"country"`
}

// Fields returns the record in CSV column order
func (r Record) Fields() []string {
	return []string{
		r.Date, r.Domain, r.IP, r.Reverse, r.Description,
		r.Registrant, r.ASN, r.Inactive, r.Country,
	}
}

// Headers names the columns returned by Record.Fields
var Headers = []string{
	"Date", "Domain", "IP", "Reverse", "Description",
	"Registrant", "ASN", "Inactive", "Country",
}

//DomainMode selects which domain field SearchDomain matches against
type DomainMode int

const (
	//DomainBoth matches the forward domain, then the reverse DNS name
	DomainBoth DomainMode = 0

	//DomainForward matches only the forward domain
	DomainForward DomainMode = 1

	//DomainReverse matches only the reverse DNS name
	DomainReverse DomainMode = 2
)

func (m DomainMode) String() string {
	switch m {
	case DomainBoth:
		return "both"
	case DomainForward:
		return "forward"
	case DomainReverse:
		return "reverse"
	}
	return "unknown"
}

// ParseDomainMode converts "both", "forward" or "reverse" into a DomainMode.
// The empty string selects DomainBoth.
func ParseDomainMode(s string) (DomainMode, error) {
	switch s {
	case "", "both":
		return DomainBoth, nil
	case "forward":
		return DomainForward, nil
	case "reverse":
		return DomainReverse, nil
	}
	return DomainBoth, &UnrecognizedModeError{Value: s}
}
