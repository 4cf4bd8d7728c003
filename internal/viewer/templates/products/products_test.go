package products

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"finitefield.org/product-viewer/internal/viewer/catalog"
)

const sampleSnapshot = `[
  {"name": "Brake Pad", "category": "Brakes", "oe_number": ["X1"], "sku": "S1,S2", "fitment": "Golf; ;Polo", "url": "https://example.com/p/1", "image_url": "javascript:alert(1)"},
  {"name": "Brake Disc <b>HD</b>", "category": "Brakes", "oe_number": "X2", "url": "https://example.com/p/2"},
  {"name": "Pad Wear Sensor", "category": "Electrical", "oe_number": ["X1", " X3 "]}
]`

func sampleResult(t *testing.T) catalog.Result {
	t.Helper()

	set, err := catalog.ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)
	return catalog.Result{
		Products: set,
		Snapshot: catalog.Snapshot{
			Path:    "data/all_products_20250101.json",
			Name:    "all_products_20250101.json",
			ModTime: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			Size:    2048,
		},
	}
}

func render(t *testing.T, component templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, component.Render(context.Background(), &buf), "component must render without error")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err, "html must parse")
	return doc
}

func TestIndexRendersSelectorAndTable(t *testing.T) {
	t.Parallel()

	result := sampleResult(t)
	state := QueryState{Category: "Brakes", Search: "pad"}
	view := catalog.Browse(result.Products, catalog.Query{Category: state.Category, Search: state.Search})
	doc := render(t, Index(BuildPageData("/catalog", state, view, result, "data")))

	require.Equal(t, PageTitle, strings.TrimSpace(doc.Find("title").Text()))

	form := doc.Find("[data-filter-form]")
	require.Equal(t, "/catalog/products/table", form.AttrOr("hx-get", ""))
	require.Equal(t, "/catalog/", form.AttrOr("action", ""))
	require.Equal(t, "pad", doc.Find("[data-search-input]").AttrOr("value", ""))

	options := doc.Find("[data-category-select] option")
	require.Equal(t, 3, options.Length())
	require.Equal(t, catalog.AllCategories, options.Eq(0).AttrOr("value", ""))
	require.Equal(t, "Brakes (2)", strings.TrimSpace(options.Eq(1).Text()))
	_, selected := options.Eq(1).Attr("selected")
	require.True(t, selected, "applied category should be selected")
	require.Contains(t, doc.Find("[data-category-total]").Text(), "2")

	rows := doc.Find("[data-product-row]")
	require.Equal(t, 1, rows.Length())
	require.Equal(t, "Pad", rows.Find("mark").Text())
	require.Contains(t, doc.Find("[data-summary]").Text(), "共找到 1 条产品记录")
	require.Contains(t, doc.Find("[data-source]").Text(), "all_products_20250101.json")
}

func TestTableRendersTagsAndLinks(t *testing.T) {
	t.Parallel()

	result := sampleResult(t)
	view := catalog.Browse(result.Products, catalog.Query{})
	doc := render(t, Table(TablePayload(QueryState{}, view, result, "data")))

	headers := doc.Find("th")
	require.Equal(t, "Name (产品名称)", headers.First().Text())
	require.Equal(t, "link", doc.Find("th[data-field=url]").AttrOr("data-kind", ""))

	first := doc.Find("[data-product-row]").First()
	sku := first.Find("td[data-field=sku] li")
	require.Equal(t, 2, sku.Length())
	require.Equal(t, "S2", sku.Eq(1).Text())

	fitment := first.Find("td[data-field=fitment] li")
	require.Equal(t, 3, fitment.Length())
	require.True(t, fitment.Eq(1).HasClass("tag--empty"))

	link := first.Find("td[data-field=url] a")
	require.Equal(t, "https://example.com/p/1", link.AttrOr("href", ""))
	require.Equal(t, LinkText, link.Text())

	require.Equal(t, 0, first.Find("td[data-field=image_url] a").Length(), "unsafe links must not render anchors")
	require.Equal(t, ImageText, first.Find("td[data-field=image_url] .link--blocked").Text())

	second := doc.Find("[data-product-row]").Eq(1)
	require.Equal(t, "Brake Disc <b>HD</b>", second.Find("td[data-field=name]").Text(), "scraped text is shown verbatim")
	require.Equal(t, 0, second.Find("td[data-field=name] b").Length(), "scraped markup must not be interpreted")
	require.Equal(t, 0, second.Find("td[data-field=image_url] a, td[data-field=image_url] span").Length())
}

func TestTableKeepsAngleBracketText(t *testing.T) {
	t.Parallel()

	set, err := catalog.ParseSnapshot([]byte(`[{"name": "Seal <rubber> kit", "sku": "<A1>,B2", "fitment": "Golf <Mk7>;Polo"}]`))
	require.NoError(t, err)
	result := catalog.Result{Products: set}
	view := catalog.Browse(set, catalog.Query{Search: "<rubber>"})
	doc := render(t, Table(TablePayload(QueryState{Search: "<rubber>"}, view, result, "data")))

	row := doc.Find("[data-product-row]")
	require.Equal(t, 1, row.Length())
	require.Equal(t, "Seal <rubber> kit", row.Find("td[data-field=name]").Text())
	require.Equal(t, "<rubber>", row.Find("td[data-field=name] mark").Text())
	require.Equal(t, "<A1>", row.Find("td[data-field=sku] li").First().Text())
	require.Equal(t, "Golf <Mk7>", row.Find("td[data-field=fitment] li").First().Text())
}

func TestTableNoData(t *testing.T) {
	t.Parallel()

	result := catalog.Result{Err: errors.New("load snapshot data (no_snapshot): no snapshot file found")}
	view := catalog.Browse(result.Products, catalog.Query{})
	data := BuildPageData("/", QueryState{}, view, result, "snapshots")
	doc := render(t, Index(data))

	require.Equal(t, "no_data", doc.Find("[data-product-results]").AttrOr("data-state", ""))
	require.Contains(t, doc.Find("[data-error]").Text(), "'snapshots' 文件夹")
	require.Contains(t, doc.Find("[data-error-detail]").Text(), "no snapshot file found")
	require.Equal(t, 0, doc.Find("[data-product-table]").Length())
	require.Equal(t, 0, doc.Find("[data-category-select]").Length())
	require.Equal(t, "/", doc.Find("[data-filter-form]").AttrOr("action", ""))
}

func TestTableNoMatches(t *testing.T) {
	t.Parallel()

	result := sampleResult(t)
	view := catalog.Browse(result.Products, catalog.Query{Search: "wiper"})
	doc := render(t, Table(TablePayload(QueryState{Search: "wiper"}, view, result, "data")))

	require.Equal(t, MessageNoMatches, strings.TrimSpace(doc.Find("[data-empty]").Text()))
	require.Contains(t, doc.Find("[data-summary]").Text(), "Found 0 records")
	require.Equal(t, 0, doc.Find("[data-product-table]").Length())
}

func TestCategoryUnavailableNote(t *testing.T) {
	t.Parallel()

	set, err := catalog.ParseSnapshot([]byte(`[{"name": "Wiper"}]`))
	require.NoError(t, err)
	result := catalog.Result{Products: set}
	view := catalog.Browse(set, catalog.Query{Category: "Brakes"})
	doc := render(t, Index(BuildPageData("/", QueryState{Category: "Brakes"}, view, result, "data")))

	require.Equal(t, MessageCategoryUnavailable, strings.TrimSpace(doc.Find("[data-category-note]").Text()))
	require.Equal(t, 0, doc.Find("[data-category-select]").Length())
	require.Equal(t, 1, doc.Find("[data-product-row]").Length())
	require.Equal(t, 0, doc.Find("[data-source]").Length())
}

func TestSummaryText(t *testing.T) {
	t.Parallel()

	got := Summary(catalog.Stats{RecordCount: 2, DistinctIdentifierCount: 3})
	require.Equal(t, "共找到 2 条产品记录 (Found 2 records)。独立 OE 号总数 (Total Unique OE Numbers): 3", got)
}
