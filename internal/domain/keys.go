package domain

import (
	"strconv"
	"strings"
)

// Ключи кэша результатов — единое место, чтобы не расползались по коду.
// Одинаковый ключ = одинаковый запрос, независимо от места вызова.

const (
	cacheKeyCatalog = "catalog:"
	cacheKeyBucket  = "bucket:"
	cacheKeyRelated = "related:"
	cacheKeyProduct = "product:"
)

// CacheKeyCatalogPage — страница каталога по нормализованным фасетам.
// Группа и подпункт с ':' или '"' записываются в кавычках strconv.Quote,
// иначе как есть: разные фасеты не сливаются в один ключ.
func CacheKeyCatalogPage(f FacetState, page, pageSize int) string {
	e := f.Effective()
	var b strings.Builder
	b.WriteString(CacheKeyCatalogPrefix(e.Category))
	b.WriteString(keyPart(e.ActiveGroup))
	b.WriteByte(':')
	b.WriteString(keyPart(e.ActiveSubitem))
	b.WriteString(":p")
	b.WriteString(strconv.Itoa(page))
	b.WriteString(":s")
	b.WriteString(strconv.Itoa(pageSize))
	return b.String()
}

func keyPart(s string) string {
	if strings.ContainsAny(s, ":\"") {
		return strconv.Quote(s)
	}
	return s
}

// CacheKeyCatalogPrefix — префикс всех страниц категории (для инвалидации).
func CacheKeyCatalogPrefix(c Category) string { return cacheKeyCatalog + string(c) + ":" }

func CacheKeyLatest(n int) string { return cacheKeyBucket + "latest:" + strconv.Itoa(n) }
func CacheKeyOnSale(n int) string { return cacheKeyBucket + "on_sale:" + strconv.Itoa(n) }

// CacheKeyBucketPrefix — префикс именованных корзин (новинки, скидки).
func CacheKeyBucketPrefix() string { return cacheKeyBucket }

func CacheKeyRelated(c Category, productID string, n int) string {
	return CacheKeyRelatedPrefix(c) + productID + ":" + strconv.Itoa(n)
}

func CacheKeyRelatedPrefix(c Category) string { return cacheKeyRelated + string(c) + ":" }

func CacheKeyProduct(id string) string { return cacheKeyProduct + id }
