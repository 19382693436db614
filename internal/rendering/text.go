package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RenderText extracts an ATS-friendly plain-text version from HTML produced
// by RenderHTML: section headings upper-cased, one line per block, skill tags
// joined by commas and achievements as "- " bullets.
func RenderText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Stage: StageText, Message: "failed to parse HTML", Cause: err}
	}

	var lines []string
	add := func(s string) {
		if s = collapseSpace(s); s != "" {
			lines = append(lines, s)
		}
	}

	container := doc.Find("div.container").First()
	add(container.Find("h1").First().Text())
	add(container.Find(".contact-line").First().Text())
	container.Find(".links a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		add(a.Text() + ": " + href)
	})

	container.Find("div.section").Each(func(_ int, section *goquery.Selection) {
		lines = append(lines, "")
		add(strings.ToUpper(section.Find("h2").First().Text()))

		if tags := section.Find(".skill-tag"); tags.Length() > 0 {
			add(strings.Join(tags.Map(func(_ int, s *goquery.Selection) string {
				return collapseSpace(s.Text())
			}), ", "))
			return
		}

		items := section.Find("div.item")
		if items.Length() == 0 {
			section.Find("p").Each(func(_ int, p *goquery.Selection) { add(p.Text()) })
			return
		}
		items.Each(func(_ int, item *goquery.Selection) {
			title := collapseSpace(item.Find("h3").First().Text())
			if date := collapseSpace(item.Find(".date").First().Text()); date != "" && date != "-" {
				title += " (" + date + ")"
			}
			add(title)
			item.Find("p").Each(func(_ int, p *goquery.Selection) { add(p.Text()) })
			item.Find("li").Each(func(_ int, li *goquery.Selection) { add("- " + collapseSpace(li.Text())) })
		})
	})

	return strings.Join(lines, "\n") + "\n", nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
