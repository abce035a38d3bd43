package mdl

import "strings"

// SearchIP returns the first row whose IP matches addr. CIDR (/N) and port
// (:N) suffixes are stripped from the row before comparing and surrounding
// whitespace is ignored on both sides.
func (l *List) SearchIP(addr string) (Record, bool) {
	addr = strings.TrimSpace(addr)
	for i := range l.entries {
		e := &l.entries[i]
		if l.filtered(e) {
			continue
		}
		if normalizeIP(e.IP) == addr {
			return e.Record, true
		}
	}
	return Record{}, false
}

// SearchDomainForward returns every row whose domain contains domain
func (l *List) SearchDomainForward(domain string) []Record {
	return l.searchField(domain, func(e *entry) string { return e.Domain })
}

// SearchDomainReverse returns every row whose reverse DNS name contains domain
func (l *List) SearchDomainReverse(domain string) []Record {
	return l.searchField(domain, func(e *entry) string { return e.Reverse })
}

// SearchDomain searches the domain fields selected by mode. DomainBoth
// returns the forward matches followed by the reverse matches, so a row
// matching both fields is returned twice.
func (l *List) SearchDomain(domain string, mode DomainMode) ([]Record, error) {
	switch mode {
	case DomainBoth:
		forward := l.SearchDomainForward(domain)
		return append(forward, l.SearchDomainReverse(domain)...), nil
	case DomainForward:
		return l.SearchDomainForward(domain), nil
	case DomainReverse:
		return l.SearchDomainReverse(domain), nil
	}
	return nil, &UnrecognizedModeError{Mode: mode}
}

func (l *List) searchField(substr string, field func(*entry) string) []Record {
	var results []Record
	for i := range l.entries {
		e := &l.entries[i]
		if l.filtered(e) {
			continue
		}
		if strings.Contains(field(e), substr) {
			results = append(results, e.Record)
		}
	}
	return results
}

// filtered reports whether e is hidden from results
func (l *List) filtered(e *entry) bool {
	return e.inactive && !l.showInactive
}

// normalizeIP strips a CIDR suffix, or failing that a port suffix
func normalizeIP(ip string) string {
	if i := strings.Index(ip, "/"); i >= 0 {
		ip = ip[:i]
	} else if i := strings.Index(ip, ":"); i >= 0 {
		ip = ip[:i]
	}
	return strings.TrimSpace(ip)
}
