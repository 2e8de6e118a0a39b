package xmlfeed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	doc, root := NewDocument("Orders")
	root.CreateAttr("pages", "2")
	order := root.CreateElement("Order")

	var f Fields
	f.AddCData("OrderNumber", "1001")
	f.AddCData("Name", "Tom & Jerry <Ltd>")
	f.AddOther("OrderTotal", "42.50")
	Apply(order, f)

	out, err := Render(doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<Orders pages="2">`)
	assert.Contains(t, out, "<OrderNumber><![CDATA[1001]]></OrderNumber>")
	assert.Contains(t, out, "<Name><![CDATA[Tom & Jerry <Ltd>]]></Name>")
	assert.Contains(t, out, "<OrderTotal>42.50</OrderTotal>")
	assert.Contains(t, out, "\n    <OrderNumber>", "children are indented")
}

func TestApply_Order(t *testing.T) {
	doc, root := NewDocument("Item")

	var f Fields
	f.AddOther("Quantity", "1")
	f.AddCData("SKU", "MUG-1")
	f.AddCData("Name", "Mug")
	Apply(root, f)

	children := root.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "SKU", children[0].Tag)
	assert.Equal(t, "Name", children[1].Tag)
	assert.Equal(t, "Quantity", children[2].Tag)

	_, err := Render(doc)
	require.NoError(t, err)
}

func TestSetCData(t *testing.T) {
	t.Run("replaces existing child in place", func(t *testing.T) {
		_, root := NewDocument("Order")
		SetCData(root, "OrderNumber", "1")
		SetText(root, "OrderTotal", "2.00")
		SetCData(root, "OrderNumber", "2")

		children := root.ChildElements()
		require.Len(t, children, 2)
		assert.Equal(t, "OrderNumber", children[0].Tag)
		assert.Equal(t, "2", children[0].Text())
	})

	t.Run("empty value leaves element empty", func(t *testing.T) {
		doc, root := NewDocument("Item")
		SetCData(root, "SKU", "")

		out, err := Render(doc)
		require.NoError(t, err)
		assert.Contains(t, out, "<SKU/>")
		assert.NotContains(t, out, "CDATA")
	})

	t.Run("splits cdata terminator", func(t *testing.T) {
		doc, root := NewDocument("Order")
		SetCData(root, "InternalNotes", "a]]>b")

		out, err := Render(doc)
		require.NoError(t, err)
		assert.Contains(t, out, "<![CDATA[a]]]]><![CDATA[>b]]>")
	})
}

func TestSetText_Escapes(t *testing.T) {
	doc, root := NewDocument("Order")
	SetText(root, "Note", "a < b")

	out, err := Render(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "<Note>a &lt; b</Note>")
}
