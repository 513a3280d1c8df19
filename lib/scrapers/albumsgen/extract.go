package albumsgen

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"albumboard/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const BaseURL = "https://1001albumsgenerator.com"

const (
	ratedAlbumsHeading = "Rated Albums"
	ratingIDPrefix     = "group-stats--listened-albums--rating"
	dateIDPrefix       = "group-stats--listened-albums--date"
	controversyAttr    = "data-controversy"
	placeholderAlbum   = "Unknown Album"
)

// the site prints dates like "Mon Jan 02 2023 10:00:00 GMT+0000 (...)",
// everything from "GMT" onward is dropped before parsing
const ratedDateLayout = "Mon Jan 02 2006 15:04:05"

// GroupNameFromURL pulls the group name out of the `groups/<name>`
// path segment of a group page URL.
func GroupNameFromURL(pageURL string) (string, error) {
	link, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.Trim(link.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "groups" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("no groups/<name> segment in url %q", pageURL)
}

// ExtractAlbums turns a group page into rated album records, in table
// order. Individual bad rows produce warnings and are skipped or kept
// with defaulted fields, only missing page landmarks are fatal.
func ExtractAlbums(ctx context.Context, page []byte, pageURL string) ([]AlbumRecord, []Warning, error) {
	ctx, span := tracer.Start(ctx, "ExtractAlbums")
	defer span.End()

	groupName, err := GroupNameFromURL(pageURL)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, nil, err
	}

	heading := findHeading(doc, ratedAlbumsHeading)
	if heading == nil {
		return nil, nil, &StructureError{Landmark: fmt.Sprintf("%q heading", ratedAlbumsHeading)}
	}
	table := nextTable(heading)
	if table == nil {
		return nil, nil, &StructureError{Landmark: "albums table"}
	}

	var records []AlbumRecord
	var warnings []Warning

	rows := goquery.NewDocumentFromNode(table).Find("tr")
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// header row
			return
		}
		record, warns, err := extractRow(row, groupName)
		rowIdx := i - 1
		for _, w := range warns {
			w.Row = rowIdx
			warnings = append(warnings, w)
			slog.WarnContext(ctx, "album row warning", "row", rowIdx, "err", w.Err)
		}
		if err != nil {
			warnings = append(warnings, Warning{Row: rowIdx, Dropped: true, Err: err})
			slog.WarnContext(ctx, "album row dropped", "row", rowIdx, "err", err)
			return
		}
		if record != nil {
			records = append(records, *record)
		}
	})

	return records, warnings, nil
}

// extractRow parses one data row. A nil record with nil error means
// the row was silently skipped (too few cells). A non-nil error drops
// the row with a warning.
func extractRow(row *goquery.Selection, groupName string) (*AlbumRecord, []Warning, error) {
	record := &AlbumRecord{Album: placeholderAlbum}

	record.Controversy = controversyFromRow(row)

	cells := row.Find("td")
	if cells.Length() < 4 {
		return nil, nil, nil
	}

	if anchor, ok := htmlutil.FirstAnchor(cells.Eq(0).Find("a.link--no-style")); ok {
		record.Album = anchor.Name
		record.SpotifyURL = anchor.Href
	}

	record.Artist = htmlutil.CleanText(cells.Eq(1).Text())

	record.Rating = extractRating(row, cells)

	votesText := strings.TrimSpace(cells.Eq(3).Text())
	votes, err := strconv.Atoi(votesText)
	if err != nil {
		return nil, nil, fmt.Errorf("bad votes count %q: %w", votesText, err)
	}
	record.Votes = votes

	var warnings []Warning
	date, err := extractDate(row, cells)
	if err != nil {
		warnings = append(warnings, Warning{Err: err})
	} else {
		record.Date = date
	}

	record.DetailsURL = detailsURL(row, cells, groupName)

	return record, warnings, nil
}

func controversyFromRow(row *goquery.Selection) float64 {
	value, err := strconv.ParseFloat(row.AttrOr(controversyAttr, ""), 64)
	if err != nil {
		return 0
	}
	return value
}

var firstNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// ratingStrategies is the ordered fallback chain for the rating cell:
// the dedicated stat node first, then the first numeric substring of
// the cell's text. First success wins, no match means rating 0. The
// lenience is deliberate, a restyled rating widget should degrade to
// zeroes instead of killing the whole scrape.
var ratingStrategies = []func(row *goquery.Selection, cells *goquery.Selection) (float64, bool){
	ratingFromStatNode,
	ratingFromCellText,
}

func extractRating(row *goquery.Selection, cells *goquery.Selection) float64 {
	for _, strategy := range ratingStrategies {
		if rating, ok := strategy(row, cells); ok {
			return rating
		}
	}
	return 0
}

func ratingFromStatNode(row *goquery.Selection, _ *goquery.Selection) (float64, bool) {
	node := row.Find(fmt.Sprintf("[id^=%q]", ratingIDPrefix))
	if node.Length() == 0 {
		return 0, false
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(node.First().Text()), 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

func ratingFromCellText(_ *goquery.Selection, cells *goquery.Selection) (float64, bool) {
	match := firstNumber.FindString(cells.Eq(2).Text())
	if match == "" {
		return 0, false
	}
	rating, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

func extractDate(row *goquery.Selection, cells *goquery.Selection) (time.Time, error) {
	text := ""
	dateNode := row.Find(fmt.Sprintf("[id^=%q]", dateIDPrefix))
	if dateNode.Length() > 0 {
		text = dateNode.First().Text()
	} else if cells.Length() > 4 {
		text = cells.Eq(4).Text()
	}

	text, _, _ = strings.Cut(text, "GMT")
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("no date on row")
	}

	date, err := time.Parse(ratedDateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", text, err)
	}
	return date, nil
}

// detailsURL rebuilds the absolute per-album details link from the
// numeric id at the end of the details anchor's href. An unusable
// anchor just leaves the link empty.
func detailsURL(row *goquery.Selection, cells *goquery.Selection, groupName string) string {
	anchor, ok := htmlutil.FirstAnchor(cells.Eq(2).Find("a"))
	if !ok {
		anchor, ok = findDetailsAnchor(row)
	}
	if !ok {
		return ""
	}

	segments := strings.Split(strings.Trim(anchor.Href, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" || strings.IndexFunc(id, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return ""
	}
	return fmt.Sprintf("%s/groups/%s/albums/%s", BaseURL, groupName, id)
}

// one site revision dropped the anchor out of the rating cell and
// labelled it with literal "Details" text instead
func findDetailsAnchor(row *goquery.Selection) (htmlutil.Anchor, bool) {
	for _, anchor := range htmlutil.Anchors(row.Find("a")) {
		if anchor.Name == "Details" {
			return anchor, true
		}
	}
	return htmlutil.Anchor{}, false
}

func findHeading(doc *goquery.Document, text string) *html.Node {
	var heading *html.Node
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) == text {
			heading = sel.Nodes[0]
			return false
		}
		return true
	})
	return heading
}

// nextTable finds the first table after the node in document order,
// descending into siblings and climbing out of exhausted subtrees the
// way a reader scans the page.
func nextTable(node *html.Node) *html.Node {
	for n := nextNode(node); n != nil; n = nextNode(n) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return n
		}
	}
	return nil
}

func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}
