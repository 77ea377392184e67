package view

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/kart-io/medreq/internal/medreq/form"
	"github.com/kart-io/medreq/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool, lang string) string {
	switch {
	case b && strings.HasPrefix(lang, "es"):
		return "sí"
	case b:
		return "yes"
	default:
		return "no"
	}
}

func sortedKeys(m form.FieldErrors) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderMedicines prints the medicine catalogue.
func RenderMedicines(w io.Writer, list []model.Medicine, lang string) {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tNO POS")
	for _, m := range list {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, m.Name, yesNo(m.IsNoPos, lang))
	}
	_ = tw.Flush()
}

// RenderRequestPage prints one page of requests with display row numbers.
func RenderRequestPage(w io.Writer, page model.RequestPage, lang string) {
	if len(page.Data) == 0 {
		_, _ = fmt.Fprintln(w, "(no requests)")
	} else {
		tw := newTable(w)
		_, _ = fmt.Fprintln(tw, "#\tMEDICINE\tNO POS\tORDER\tADDRESS\tPHONE\tEMAIL")
		for i, r := range page.Data {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				page.RowNumber(i),
				r.Medicine.Name,
				yesNo(r.Medicine.IsNoPos, lang),
				dash(model.Deref(r.OrderNumber)),
				dash(model.Deref(r.Address)),
				dash(model.Deref(r.Phone)),
				dash(model.Deref(r.Email)),
			)
		}
		_ = tw.Flush()
	}
	_, _ = fmt.Fprintf(w, "page %d/%d, %d total\n", page.CurrentPage, page.LastPage, page.Total)
}

// RenderRequestForm prints a request form in view mode.
func RenderRequestForm(w io.Writer, f *form.RequestForm, lang string) {
	m := f.Medicine()
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "Medicine:\t%s\n", dash(m.Name))
	_, _ = fmt.Fprintf(tw, "NO POS:\t%s\n", yesNo(f.ExtendedFieldsVisible(), lang))
	if f.ExtendedFieldsVisible() {
		fields := f.Fields()
		_, _ = fmt.Fprintf(tw, "Order number:\t%s\n", dash(fields.OrderNumber))
		_, _ = fmt.Fprintf(tw, "Address:\t%s\n", dash(fields.Address))
		_, _ = fmt.Fprintf(tw, "Phone:\t%s\n", dash(fields.Phone))
		_, _ = fmt.Fprintf(tw, "Email:\t%s\n", dash(fields.Email))
	}
	_ = tw.Flush()
}

// RenderUser prints a user record.
func RenderUser(w io.Writer, u model.User) {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", dash(u.Name))
	_, _ = fmt.Fprintf(tw, "Email:\t%s\n", dash(u.Email))
	_ = tw.Flush()
}
