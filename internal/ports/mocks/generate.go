//go:generate mockgen -source=../catalog_source.go   -destination=./mock_catalog_source.go   -package=mocks
//go:generate mockgen -source=../result_cache.go     -destination=./mock_result_cache.go     -package=mocks
//go:generate mockgen -source=../kv_store.go         -destination=./mock_kv_store.go         -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks
//go:generate mockgen -source=../catalog_service.go  -destination=./mock_catalog_service.go  -package=mocks
//go:generate mockgen -source=../event_publisher.go  -destination=./mock_event_publisher.go  -package=mocks

package mocks
