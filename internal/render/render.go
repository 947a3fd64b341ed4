// Package render builds the menu board page as an HTML node tree. Every
// function is a pure mapping from data to a subtree; serialization goes
// through html.Render, so escaping is handled uniformly and the same input
// always produces byte-identical output.
package render

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ovenside/menuboard/internal/format"
	"github.com/ovenside/menuboard/internal/models"
)

// Fixed user-facing copy.
const (
	MsgLoadFailed = "Sorry, we couldn't load the menu right now. Please try again later."
	MsgNoItems    = "No items available today. Check back soon!"

	allergenLabel = "Contains:"
)

// Header carries the preformatted page header fields. Empty fields are
// omitted from the page rather than rendered blank.
type Header struct {
	Title       string
	MarketDate  string
	LastUpdated string
}

// Item maps one menu item to its subtree: a header row with name and price,
// an optional description, and an optional allergen block.
func Item(it models.MenuItem) *html.Node {
	class := "item"
	if it.SoldOut {
		class += " sold-out"
	}
	root := el("article", class)

	head := el("div", "item-head")
	appendText(head, el("h3", "item-name"), it.Name)
	appendText(head, el("span", "item-price"), format.Price(it.Price))
	root.AppendChild(head)

	if it.Description != "" {
		appendText(root, el("p", "item-desc"), it.Description)
	}

	if len(it.Allergens) > 0 {
		block := el("div", "item-allergens")
		appendText(block, el("span", "allergens-label"), allergenLabel)
		for _, a := range it.Allergens {
			appendText(block, el("span", "allergen"), a)
		}
		root.AppendChild(block)
	}

	return root
}

// Category maps one category to a section holding its items in input order.
// An empty category yields nil.
func Category(c models.Category) *html.Node {
	if !c.HasItems() {
		return nil
	}

	root := el("section", "category")
	appendText(root, el("h2", "category-name"), c.Name)

	items := el("div", "category-items")
	for _, it := range c.Items {
		items.AppendChild(Item(it))
	}
	root.AppendChild(items)

	return root
}

// Document builds the full page for a fetched menu. When no category has
// items the menu container holds the "no items" message block instead; that
// shares the error page's visual treatment but is a valid, rendered state.
func Document(h Header, doc *models.MenuDocument) *html.Node {
	menu := el("main", "")
	menu.Attr = append(menu.Attr, html.Attribute{Key: "id", Val: "menu"})

	if doc.Renderable() {
		for _, c := range doc.Categories {
			if sec := Category(c); sec != nil {
				menu.AppendChild(sec)
			}
		}
	} else {
		appendText(menu, el("div", "board-message"), MsgNoItems)
	}

	return page(h, menu)
}

// MessagePage builds the page shown when the menu could not be loaded.
func MessagePage(h Header, msg string) *html.Node {
	menu := el("main", "")
	menu.Attr = append(menu.Attr, html.Attribute{Key: "id", Val: "menu"})
	appendText(menu, el("div", "board-message"), msg)
	return page(h, menu)
}

// HTML serializes a page tree with its doctype.
func HTML(root *html.Node) ([]byte, error) {
	if root.Parent != nil {
		root.Parent.RemoveChild(root)
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func page(h Header, menu *html.Node) *html.Node {
	root := el("html", "")
	root.Attr = append(root.Attr, html.Attribute{Key: "lang", Val: "en"})

	head := el("head", "")
	meta := el("meta", "")
	meta.Attr = append(meta.Attr, html.Attribute{Key: "charset", Val: "utf-8"})
	head.AppendChild(meta)
	appendText(head, el("title", ""), h.Title)

	style := el("style", "")
	style.AppendChild(&html.Node{Type: html.TextNode, Data: stylesheet})
	head.AppendChild(style)
	root.AppendChild(head)

	body := el("body", "")
	header := el("header", "board-header")
	appendText(header, el("h1", ""), h.Title)
	if h.MarketDate != "" {
		appendText(header, el("p", "market-date"), h.MarketDate)
	}
	if h.LastUpdated != "" {
		appendText(header, el("p", "last-updated"), "Last updated: "+h.LastUpdated)
	}
	body.AppendChild(header)
	body.AppendChild(menu)
	root.AppendChild(body)

	return root
}

func el(tag, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func appendText(parent, child *html.Node, text string) {
	child.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	parent.AppendChild(child)
}

const stylesheet = `
body { font-family: Georgia, serif; margin: 0 auto; max-width: 48rem; padding: 1rem; }
.board-header { text-align: center; border-bottom: 2px solid #8b5e34; margin-bottom: 1rem; }
.category-name { border-bottom: 1px solid #ddd; }
.item-head { display: flex; justify-content: space-between; }
.item.sold-out .item-name { text-decoration: line-through; color: #999; }
.item-desc { margin: 0.25rem 0; color: #555; }
.allergens-label { font-weight: bold; margin-right: 0.5rem; }
.allergen { background: #f3e9dc; border-radius: 0.5rem; padding: 0 0.5rem; margin-right: 0.25rem; }
.board-message { text-align: center; padding: 2rem; background: #f7f3ee; border-radius: 0.5rem; }
`
