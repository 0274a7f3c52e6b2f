package ingest

import "strings"

// skuRenames maps the raw export headers of the line-item file onto the
// canonical vocabulary. Applied after CanonicalHeader, so keys are already in
// canonical form.
var skuRenames = map[string]string{
	"MATRIX_ORDER_ID":               "ORDER_ID",
	"CREATION_DATE":                 "ORDER_DATE",
	"ORDER_LINES/PRODUCT/REFERENCE": "SKU",
	"ORDER_LINES/PRODUCT/NAME":      "PRODUCT_NAME",
	"ORDER_LINES/QUANTITY":          "QUANTITY",
	"ORDER_LINES/UNIT_PRICE":        "UNIT_PRICE",
	"ORDER_LINES/TOTAL":             "LINE_TOTAL",
}

// CanonicalHeader normalizes one raw column header: trimmed, upper-cased,
// spaces joined with underscores. Idempotent.
func CanonicalHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ToUpper(h)
	return strings.Join(strings.Fields(h), "_")
}

// NormalizeSales returns a copy of the table with canonical headers. No
// renaming beyond case/space normalization happens for sales tables.
func NormalizeSales(t Table) Table {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = CanonicalHeader(h)
	}
	return Table{Headers: headers, Rows: t.Rows}
}

// NormalizeSKU canonicalizes headers and then applies the fixed rename table.
// A rename is skipped when the canonical target name is already present in the
// table, so re-normalizing an already-canonical table changes nothing.
// Unmapped columns pass through unchanged.
func NormalizeSKU(t Table) Table {
	out := NormalizeSales(t)

	present := make(map[string]struct{}, len(out.Headers))
	for _, h := range out.Headers {
		present[h] = struct{}{}
	}

	for i, h := range out.Headers {
		target, ok := skuRenames[h]
		if !ok {
			continue
		}
		if _, taken := present[target]; taken {
			continue
		}
		out.Headers[i] = target
		present[target] = struct{}{}
	}

	return out
}
