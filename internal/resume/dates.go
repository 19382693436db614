package resume

// DateLabelLayout renders dates as an abbreviated English month and a
// four-digit year, e.g. "Jan 2024".
const DateLabelLayout = "Jan 2006"

// PresentLabel replaces the end date of a current position.
const PresentLabel = "Present"

// FormatDate renders a date label. An absent date renders as "".
func FormatDate(d *Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.UTC().Format(DateLabelLayout)
}

// experienceEndLabel applies the rule that an ongoing position always ends
// in PresentLabel, whatever end date is stored.
func experienceEndLabel(e Experience) string {
	if e.Current {
		return PresentLabel
	}
	return FormatDate(e.EndDate)
}
