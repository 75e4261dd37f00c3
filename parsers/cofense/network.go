package cofense

import (
	"github.com/abusix/ioc-parsers/indicators"
	"github.com/abusix/ioc-parsers/parsers/common"
)

// ExtractURLs returns one record per URL line; the URL and its domain are both defanged
func ExtractURLs(content string) ([]*indicators.Record, error) {
	urls := common.ExtractURLCandidates(content)
	if len(urls) == 0 {
		return nil, common.NewExtractionMissError(indicators.KindURL)
	}

	records := make([]*indicators.Record, 0, len(urls))
	for _, url := range urls {
		records = append(records, indicators.NewURLRecord(common.Sanitize(url), common.ResolveDomain(url)))
	}
	return records, nil
}

// ExtractIPs returns one record per dotted quad, defanged
func ExtractIPs(content string) ([]*indicators.Record, error) {
	ips := common.ExtractAllIPv4(content)
	if len(ips) == 0 {
		return nil, common.NewExtractionMissError(indicators.KindIP)
	}

	records := make([]*indicators.Record, 0, len(ips))
	for _, ip := range ips {
		records = append(records, indicators.NewIPRecord(common.Defang(ip)))
	}
	return records, nil
}
