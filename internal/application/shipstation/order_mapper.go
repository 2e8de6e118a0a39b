package shipstation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared/valueobject"
	"github.com/commerce/shipstation/internal/domain/shipstation"
	"github.com/commerce/shipstation/internal/infrastructure/xmlfeed"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// errSkipOrder marks an order that does not qualify for the feed
var errSkipOrder = errors.New("order skipped")

// orderMapper turns one order into an <Order> element
type orderMapper struct {
	snap    Snapshot
	images  shipstation.ImageURLBuilder
	plugins *PluginRegistry
	logger  *zap.Logger
}

func (m *orderMapper) mapOrder(ctx context.Context, order *commerce.Order) (*etree.Element, error) {
	shipment, ok := order.FirstShipment()
	if !ok {
		return nil, fmt.Errorf("%w: no shipment", errSkipOrder)
	}
	ship := shipment.ShippingProfile.GetAddress()
	if ship == nil {
		return nil, fmt.Errorf("%w: no shipping address", errSkipOrder)
	}

	if m.snap.Settings.Logging {
		m.logger.Info("Processing order", zap.String("order_id", order.ID.String()))
	}

	if !shipment.HasItems() {
		return nil, fmt.Errorf("%w: no shipment items", errSkipOrder)
	}
	if !m.snap.Settings.ExposesMethod(shipment.MethodName()) {
		return nil, fmt.Errorf("%w: shipping method %q not exposed", errSkipOrder, shipment.MethodName())
	}

	bindings := m.snap.Bindings
	el := etree.NewElement("Order")

	var header xmlfeed.Fields
	header.AddCData("OrderNumber", order.OrderNumber)
	header.AddCData("OrderStatus", order.State.Label())
	header.AddCData("ShippingMethod", shipment.ServiceLabel())
	if notes, ok := bindings.OrderNotes.Read(order, shipment); ok {
		header.AddCData("InternalNotes", notes)
	}
	if notes, ok := bindings.CustomerNotes.Read(order, shipment); ok {
		header.AddCData("CustomerNotes", notes)
	}
	header.AddOther("OrderDate", FormatTimestamp(order.PlacedAt))
	header.AddOther("LastModified", FormatTimestamp(order.ChangedAt))
	header.AddOther("OrderTotal", order.Total.Number())
	header.AddOther("ShippingAmount", shipment.Amount.Number())
	header.AddOther("TaxAmount", TaxAmount(order.CollectAdjustments()).StringFixed(2))
	xmlfeed.Apply(el, header)

	m.appendCustomer(el, order, shipment, ship)

	items := el.CreateElement("Items")
	for i := range shipment.Items {
		m.appendShipmentItem(ctx, items, order, &shipment.Items[i])
	}
	for _, adj := range order.CollectAdjustments() {
		if adj.Type == commerce.AdjustmentTypePromotion {
			appendAdjustmentItem(items, adj)
		}
	}

	return el, nil
}

func (m *orderMapper) appendCustomer(el *etree.Element, order *commerce.Order, shipment *commerce.Shipment, ship *commerce.Address) {
	bindings := m.snap.Bindings
	customer := el.CreateElement("Customer")
	xmlfeed.SetCData(customer, "CustomerCode", order.Email)

	var billTo xmlfeed.Fields
	bill := order.BillingProfile.GetAddress()
	if bill != nil {
		billTo.AddCData("Name", bill.FullName())
		billTo.AddCData("Company", bill.Organization)
	} else {
		billTo.AddCData("Name", "")
		billTo.AddCData("Company", "")
	}
	billTo.AddCData("Email", order.Email)
	if phone, ok := bindings.BillingPhone.Read(order, shipment); ok {
		billTo.AddCData("Phone", phone)
	}
	xmlfeed.Apply(customer.CreateElement("BillTo"), billTo)

	var shipTo xmlfeed.Fields
	shipTo.AddCData("Name", ship.FullName())
	shipTo.AddCData("Company", ship.Organization)
	shipTo.AddCData("Address1", ship.AddressLine1)
	shipTo.AddCData("Address2", ship.AddressLine2)
	shipTo.AddCData("City", ship.Locality)
	shipTo.AddCData("State", ship.AdministrativeArea)
	shipTo.AddCData("PostalCode", ship.PostalCode)
	shipTo.AddCData("Country", ship.CountryCode)
	if phone, ok := bindings.ShippingPhone.Read(order, shipment); ok {
		shipTo.AddCData("Phone", phone)
	}
	xmlfeed.Apply(customer.CreateElement("ShipTo"), shipTo)
}

func (m *orderMapper) appendShipmentItem(ctx context.Context, items *etree.Element, order *commerce.Order, si *commerce.ShipmentItem) {
	orderItem, ok := order.FindItem(si.OrderItemID)
	if !ok || orderItem.PurchasedEntity == nil {
		m.logger.Warn("Shipment item has no purchased entity, skipping item",
			zap.String("order_id", order.ID.String()),
			zap.String("order_item_id", si.OrderItemID.String()))
		return
	}
	variation := orderItem.PurchasedEntity
	quantity := strconv.FormatInt(si.Quantity.IntPart(), 10)

	var fields xmlfeed.Fields
	fields.AddCData("SKU", variation.SKU)
	fields.AddCData("Name", si.Title)
	if url, ok := m.imageURL(ctx, variation); ok {
		fields.AddCData("ImageUrl", url)
	}
	fields.AddOther("Quantity", quantity)
	fields.AddOther("UnitPrice", variation.Price.Number())
	m.addWeight(&fields, si.Weight, variation)

	itemEl := items.CreateElement("Item")
	xmlfeed.Apply(itemEl, fields)
	m.plugins.AlterItemXML(ctx, itemEl, orderItem, order)

	for _, component := range m.snap.Bindings.Bundle.Components(variation) {
		var bundle xmlfeed.Fields
		bundle.AddCData("SKU", component.SKU)
		bundle.AddCData("Name", component.Title)
		bundle.AddOther("LineItemID", orderItem.ID.String())
		bundle.AddOther("Quantity", quantity)
		bundle.AddOther("UnitPrice", orderItem.UnitPrice.Number())
		if component.Weight != nil && !component.Weight.IsZero() {
			number, unit := component.Weight.ShipStationWeight()
			bundle.AddOther("Weight", number.String())
			bundle.AddOther("WeightUnits", unit)
		}
		xmlfeed.Apply(items.CreateElement("Item"), bundle)
	}
}

func (m *orderMapper) imageURL(ctx context.Context, variation *commerce.ProductVariation) (string, bool) {
	image, ok := m.snap.Bindings.ProductImages.First(variation)
	if !ok || m.images == nil {
		return "", false
	}
	url, err := m.images.ThumbnailURL(ctx, image.URI)
	if err != nil {
		m.logger.Warn("Unable to build product image URL",
			zap.String("sku", variation.SKU),
			zap.String("uri", image.URI),
			zap.Error(err))
		return "", false
	}
	return url, true
}

func (m *orderMapper) addWeight(fields *xmlfeed.Fields, weight *valueobject.Weight, variation *commerce.ProductVariation) {
	if weight == nil || weight.IsZero() {
		if m.snap.Settings.Logging {
			productID := ""
			if variation.Product != nil {
				productID = variation.Product.ID.String()
			}
			m.logger.Warn("Unable to add weight for product to shipstation export",
				zap.String("product_id", productID),
				zap.String("sku", variation.SKU))
		}
		return
	}
	number, unit := weight.ShipStationWeight()
	fields.AddOther("Weight", number.String())
	fields.AddOther("WeightUnits", unit)
}

func appendAdjustmentItem(items *etree.Element, adj commerce.Adjustment) {
	var fields xmlfeed.Fields
	fields.AddCData("SKU", "")
	fields.AddCData("Name", adj.Label)
	fields.AddOther("Quantity", "1")
	fields.AddOther("UnitPrice", adj.Amount.Number())
	fields.AddOther("Adjustment", "true")
	xmlfeed.Apply(items.CreateElement("Item"), fields)
}

// TaxAmount sums tax adjustments, each rounded to cents first
func TaxAmount(adjustments []commerce.Adjustment) decimal.Decimal {
	total := decimal.Zero
	for _, adj := range adjustments {
		if adj.Type != commerce.AdjustmentTypeTax {
			continue
		}
		total = total.Add(adj.Amount.Amount().Round(2))
	}
	return total
}
