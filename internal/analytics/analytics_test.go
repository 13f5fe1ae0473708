package analytics

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAverage(t *testing.T) {
	cases := []struct {
		sum   string
		count int64
		want  string
	}{
		{"30", 2, "15.00"},
		{"10", 3, "3.33"},
		{"20.01", 2, "10.01"}, // 10.005 rounds away from zero
		{"0", 0, "0.00"},
	}
	for _, c := range cases {
		if got := Average(d(c.sum), c.count).String(); got != c.want {
			t.Fatalf("Average(%s,%d)=%s, want %s", c.sum, c.count, got, c.want)
		}
	}
}

func TestDaily_Example(t *testing.T) {
	rows := []models.BucketRow{
		{RestaurantID: 1, Bucket: "2024-01-02", Count: 1, Sum: d("5")},
		{RestaurantID: 1, Bucket: "2024-01-01", Count: 2, Sum: d("30")},
	}
	got := Daily(rows)
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"date":"2024-01-01","count":2,"amount_sum":30.00,"average":15.00},` +
		`{"date":"2024-01-02","count":1,"amount_sum":5.00,"average":5.00}]`
	if string(b) != want {
		t.Fatalf("daily=%s\nwant  %s", b, want)
	}
}

func TestHourly_SortedAscending(t *testing.T) {
	rows := []models.BucketRow{
		{RestaurantID: 1, Bucket: "2024-01-01 10:00", Count: 1, Sum: d("1")},
		{RestaurantID: 1, Bucket: "2024-01-01 09:00", Count: 2, Sum: d("3")},
	}
	got := Hourly(rows)
	if got[0].Hour != "2024-01-01 09:00" || got[1].Hour != "2024-01-01 10:00" {
		t.Fatalf("unexpected order %+v", got)
	}
	if got[0].Average.String() != "1.50" {
		t.Fatalf("unexpected average %s", got[0].Average)
	}
}

func TestBuildTrends_EmptyRestaurantHasEmptySeries(t *testing.T) {
	restaurants := []models.Restaurant{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	daily := []models.BucketRow{{RestaurantID: 1, Bucket: "2024-01-01", Count: 1, Sum: d("10")}}
	hourly := []models.BucketRow{{RestaurantID: 1, Bucket: "2024-01-01 12:00", Count: 1, Sum: d("10")}}

	got := BuildTrends(restaurants, daily, hourly)
	if len(got) != 2 || got[0].RestaurantID != 1 || got[1].RestaurantID != 2 {
		t.Fatalf("unexpected trends %+v", got)
	}
	if got[1].Trends.Daily == nil || got[1].Trends.Hourly == nil || len(got[1].Trends.Daily) != 0 {
		t.Fatalf("restaurant without orders should have empty series, got %+v", got[1].Trends)
	}
	b, _ := json.Marshal(got[1].Trends)
	if string(b) != `{"daily":[],"hourly":[]}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestRankTop_TieBreakByID(t *testing.T) {
	totals := []models.RestaurantTotal{
		{Restaurant: models.Restaurant{ID: 4, Name: "D"}, Count: 1, Sum: d("100")},
		{Restaurant: models.Restaurant{ID: 2, Name: "B"}, Count: 3, Sum: d("300")},
		{Restaurant: models.Restaurant{ID: 3, Name: "C"}, Count: 2, Sum: d("200")},
		{Restaurant: models.Restaurant{ID: 1, Name: "A"}, Count: 3, Sum: d("300")},
	}
	got := RankTop(totals, TopN)
	var ids []int64
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("ranking=%v, want [1 2 3]", ids)
	}
	if got[0].OrdersSum.String() != "300.00" || got[0].OrdersCount != 3 {
		t.Fatalf("unexpected summary %+v", got[0])
	}
	if totals[0].ID != 4 {
		t.Fatalf("input slice was reordered")
	}
}

func TestRankTop_FewerThanN(t *testing.T) {
	totals := []models.RestaurantTotal{{Restaurant: models.Restaurant{ID: 9}, Sum: decimal.Zero}}
	got := RankTop(totals, TopN)
	if len(got) != 1 || got[0].OrdersSum.String() != "0.00" {
		t.Fatalf("unexpected %+v", got)
	}
	if len(RankTop(nil, TopN)) != 0 {
		t.Fatalf("expected empty ranking")
	}
}
