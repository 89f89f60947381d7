package account

import (
	"context"
	"encoding/json"
	"testing"

	pkgerrors "github.com/rukkie/storefront/pkg/errors"
)

type stubGateway struct {
	payloads map[string]string
}

func (g *stubGateway) GetInto(ctx context.Context, resource string, dest any) error {
	payload, ok := g.payloads[resource]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeAPI, "Not Found")
	}
	return json.Unmarshal([]byte(payload), dest)
}

func TestListAddresses(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{payloads: map[string]string{
		"/api/account/addresses/": `[
			{"id":31,"full_name":"Ada Obi","line1":"12 Marina Road","city":"Lagos","postal_code":"101001","country":"NG"}
		]`,
	}}
	svc, err := NewService(gw)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	addresses, err := svc.ListAddresses(context.Background())
	if err != nil {
		t.Fatalf("ListAddresses returned error: %v", err)
	}
	if len(addresses) != 1 || addresses[0].ID != 31 || addresses[0].City != "Lagos" {
		t.Fatalf("unexpected addresses %+v", addresses)
	}
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{payloads: map[string]string{
		"/api/orders/": `[
			{"id":42,"order_number":"RK-1042","status":"paid","total":"170.50"}
		]`,
	}}
	svc, _ := NewService(gw)

	orders, err := svc.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderNumber != "RK-1042" {
		t.Fatalf("unexpected orders %+v", orders)
	}
	if !orders[0].Status.IsPaid() {
		t.Fatal("expected paid status")
	}
}
