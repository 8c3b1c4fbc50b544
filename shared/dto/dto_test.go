package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"concierge/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "confirmed",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "confirmed"},
		},
		{
			name: "eq with explicit arg name",
			filter: dto.Filter{
				ArgName:  "request_service_id",
				Field:    "service_id",
				Value:    "svc-1",
				Operator: dto.FilterOperatorEq,
				Table:    "service_requests",
			},
			wantWhere: "service_requests.service_id = :request_service_id",
			wantArgs:  map[string]any{"request_service_id": "svc-1"},
		},
		{
			name: "not eq",
			filter: dto.Filter{
				Field:    "id",
				Value:    "bk-1",
				Operator: dto.FilterOperatorNotEq,
			},
			wantWhere: "id != :id",
			wantArgs:  map[string]any{"id": "bk-1"},
		},
		{
			name: "less than",
			filter: dto.Filter{
				Field:    "check_in_date",
				Value:    "2026-09-12",
				Operator: dto.FilterOperatorLess,
			},
			wantWhere: "check_in_date < :check_in_date",
			wantArgs:  map[string]any{"check_in_date": "2026-09-12"},
		},
		{
			name: "plain query passes through",
			filter: dto.Filter{
				Value:    "DATE(bookings.check_in_date) = '2026-09-12'",
				Operator: dto.FilterPlainQuery,
			},
			wantWhere: "(DATE(bookings.check_in_date) = '2026-09-12')",
			wantArgs:  map[string]any{},
		},
		{
			name: "unknown operator yields nothing",
			filter: dto.Filter{
				Field:    "status",
				Value:    "x",
				Operator: "between",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilter_GetWhereClause_In(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Value:    []string{"pending", "confirmed"},
		Operator: dto.FilterOperatorIn,
	}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "status IN (:status_0, :status_1) ", where)
	assert.Equal(t, map[string]any{"status_0": "pending", "status_1": "confirmed"}, args)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("filters joined by the group operator", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
				dto.Filter{Field: "paid_status", Value: "unpaid", Operator: dto.FilterOperatorEq},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(status = :status AND paid_status = :paid_status)", where)
		assert.Equal(t, map[string]any{"status": "confirmed", "paid_status": "unpaid"}, args)
	})

	t.Run("nested groups are parenthesised", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "paid_status", Value: "unpaid", Operator: dto.FilterOperatorEq},
						dto.Filter{ArgName: "vs", Field: "verification_status", Value: "pending", Operator: dto.FilterOperatorEq},
					},
				},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(status = :status AND (paid_status = :paid_status OR verification_status = :vs))", where)
		assert.Len(t, args, 3)
	})

	t.Run("empty group yields nothing", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "all params parsed",
			url:  "/bookings?page=2&limit=5&sort_by=created_at&sort_dir=asc",
			expected: dto.QueryParams{
				Page:    2,
				Limit:   5,
				SortBy:  "created_at",
				SortDir: "ASC",
			},
		},
		{
			name:           "missing page and limit fall back to defaults",
			url:            "/bookings",
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  1,
				Limit: 10,
			},
		},
		{
			name:     "invalid values are ignored",
			url:      "/bookings?page=-1&limit=abc&sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)

			var params dto.QueryParams
			params.FromRequest(request, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}
