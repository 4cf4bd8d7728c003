package products

import (
	"fmt"

	"finitefield.org/product-viewer/internal/viewer/catalog"
)

// User facing texts. Every message carries the Chinese text first and the English one after.
const (
	PageTitle                  = "A-Premium 产品数据查看器 (Product Data Viewer)"
	FilterHeading              = "筛选和搜索 (Filter & Search)"
	CategoryLabel              = "按产品主分类筛选 (Filter by Category)"
	AllCategoriesLabel         = "所有分类 (All categories)"
	SearchLabel                = "名称搜索 (Search by name)"
	ListHeading                = "产品列表 (Product List)"
	MessageCategoryUnavailable = "数据中未找到 'category' 字段用于分类。 (No 'category' field found in the data.)"
	MessageNoMatches           = "没有找到符合条件的产品。 (No products found matching your criteria.)"
	LinkText                   = "打开链接 (Open link)"
	LinkHelp                   = "点击打开产品页面"
	ImageText                  = "查看图片 (View image)"
	ImageHelp                  = "点击查看图片"
	SourceLabel                = "数据来源 (Source): "
)

// MessageNoData explains that no snapshot could be shown for dir.
func MessageNoData(dir string) string {
	if dir == "" {
		dir = "data"
	}
	return fmt.Sprintf("未能加载产品数据或数据为空。请确保 '%s' 文件夹中有 '%s' 文件。 (Could not load product data or the data is empty. Make sure the '%s' folder contains an '%s' file.)",
		dir, catalog.SnapshotPattern, dir, catalog.SnapshotPattern)
}

// Summary renders the record and distinct OE number counts.
func Summary(stats catalog.Stats) string {
	return fmt.Sprintf("共找到 %d 条产品记录 (Found %d records)。独立 OE 号总数 (Total Unique OE Numbers): %d",
		stats.RecordCount, stats.RecordCount, stats.DistinctIdentifierCount)
}

// CategoryTotal renders the distinct category count shown next to the selector.
func CategoryTotal(total int) string {
	return fmt.Sprintf("（共 %d 类） (%d categories)", total, total)
}

// CategoryOptionLabel renders a selector option as "name (count)".
func CategoryOptionLabel(option catalog.CategoryOption) string {
	return fmt.Sprintf("%s (%d)", option.Value, option.Count)
}
