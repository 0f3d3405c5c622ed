package sld

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<StyledLayerDescriptor version="1.0.0"
    xmlns="http://www.opengis.net/sld"
    xmlns:ogc="http://www.opengis.net/ogc"
    xmlns:se="http://www.opengis.net/se">
  <UserLayer>
    <Name>water</Name>
    <UserStyle>
      <FeatureTypeStyle>
        <Rule>
          <PolygonSymbolizer>
            <Fill><CssParameter name="fill">#0000ff</CssParameter></Fill>
          </PolygonSymbolizer>
        </Rule>
      </FeatureTypeStyle>
    </UserStyle>
  </UserLayer>
  <NamedLayer>
    <Name>roads</Name>
    <UserStyle>
      <Name>default</Name>
      <FeatureTypeStyle>
        <Name>main roads</Name>
        <Rule>
          <Name>big</Name>
          <ogc:Filter>
            <ogc:PropertyIsGreaterThan>
              <ogc:PropertyName>pop</ogc:PropertyName>
              <ogc:Literal> 1000000 </ogc:Literal>
            </ogc:PropertyIsGreaterThan>
          </ogc:Filter>
          <MinScaleDenominator>1000</MinScaleDenominator>
          <MaxScaleDenominator> 50000 </MaxScaleDenominator>
          <LineSymbolizer>
            <Stroke>
              <CssParameter name="stroke">#000000</CssParameter>
              <CssParameter name="stroke-width"><ogc:Literal>2</ogc:Literal></CssParameter>
            </Stroke>
          </LineSymbolizer>
          <ogc:FancySymbolizer/>
          <se:PolygonSymbolizer>
            <se:Fill><se:SvgParameter name="fill">#ff0000</se:SvgParameter></se:Fill>
          </se:PolygonSymbolizer>
        </Rule>
        <Rule>
          <ElseFilter/>
          <TextSymbolizer>
            <Label><ogc:PropertyName>name</ogc:PropertyName></Label>
            <Font><CssParameter name="font-size">12.7</CssParameter></Font>
            <LabelPlacement><LinePlacement/></LabelPlacement>
            <Halo><Radius>2</Radius></Halo>
          </TextSymbolizer>
        </Rule>
      </FeatureTypeStyle>
      <CoverageStyle>
        <Rule>
          <RasterSymbolizer>
            <ColorMap type="intervals">
              <ColorMapEntry color="#000000" quantity="0" opacity="0.5"/>
              <ColorMapEntry color="#ffffff" quantity="100" label="high"/>
            </ColorMap>
          </RasterSymbolizer>
        </Rule>
      </CoverageStyle>
    </UserStyle>
  </NamedLayer>
</StyledLayerDescriptor>`

func TestParse_LayerOrder(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	layers := doc.Layers()
	require.Len(t, layers, 2)
	assert.Equal(t, "roads", layers[0].Name, "named layers come first")
	assert.Equal(t, "water", layers[1].Name)
}

func TestParse_RuleContents(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	roads := doc.NamedLayers[0]
	require.Len(t, roads.UserStyles, 1)
	styles := roads.UserStyles[0].FeatureTypeStyles
	require.Len(t, styles, 2, "CoverageStyle is kept next to FeatureTypeStyle")
	assert.Equal(t, "main roads", styles[0].Name)
	assert.Equal(t, "CoverageStyle", styles[1].XMLName.Local)

	rules := styles[0].Rules
	require.Len(t, rules, 2)

	big := rules[0]
	assert.Equal(t, "big", big.Name)
	assert.False(t, big.ElseFilter)
	require.NotNil(t, big.Filter)
	require.NotNil(t, big.MinScaleDenominator)
	require.NotNil(t, big.MaxScaleDenominator)
	assert.Equal(t, "1000", *big.MinScaleDenominator)
	assert.Equal(t, "50000", *big.MaxScaleDenominator)

	cmp, ok := big.Filter.Predicate.(*Comparison)
	require.True(t, ok, "got %T", big.Filter.Predicate)
	assert.Equal(t, OpGreaterThan, cmp.Op)
	require.Len(t, cmp.Operands, 2)
	assert.Equal(t, &PropertyName{Name: "pop"}, cmp.Operands[0])
	assert.Equal(t, &Literal{Value: "1000000"}, cmp.Operands[1])

	require.Len(t, big.Symbolizers, 3)
	assert.Equal(t, SymbolizerLine, big.Symbolizers[0].Kind())
	assert.Equal(t, SymbolizerUnknown, big.Symbolizers[1].Kind())
	assert.Equal(t, xml.Name{Space: NamespaceOGC, Local: "FancySymbolizer"}, big.Symbolizers[1].Tag())
	assert.Equal(t, SymbolizerPolygon, big.Symbolizers[2].Kind())

	line := big.Symbolizers[0].(*LineSymbolizer)
	require.NotNil(t, line.Stroke)
	params := line.Stroke.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "stroke-width", params[1].Name)
	assert.Equal(t, "2", params[1].String(), "nested ogc:Literal is used as value")

	poly := big.Symbolizers[2].(*PolygonSymbolizer)
	require.NotNil(t, poly.Fill)
	fillParams := poly.Fill.Parameters()
	require.Len(t, fillParams, 1)
	assert.Equal(t, "fill", fillParams[0].Name)
	assert.Equal(t, "#ff0000", fillParams[0].String())

	other := rules[1]
	assert.True(t, other.ElseFilter)
	assert.Nil(t, other.Filter)
	require.Len(t, other.Symbolizers, 1)
	text := other.Symbolizers[0].(*TextSymbolizer)
	require.NotNil(t, text.Label)
	require.NotNil(t, text.Label.PropertyName)
	assert.Equal(t, "name", *text.Label.PropertyName)
	require.NotNil(t, text.LabelPlacement)
	assert.NotNil(t, text.LabelPlacement.LinePlacement)
	require.NotNil(t, text.Halo)
	require.NotNil(t, text.Halo.Radius)
	assert.Equal(t, "2", text.Halo.Radius.String())
}

func TestParse_ColorMap(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	coverage := doc.NamedLayers[0].UserStyles[0].FeatureTypeStyles[1]
	require.Len(t, coverage.Rules, 1)
	raster, ok := coverage.Rules[0].Symbolizers[0].(*RasterSymbolizer)
	require.True(t, ok)
	require.NotNil(t, raster.ColorMap)
	assert.Equal(t, "intervals", raster.ColorMap.Type)
	require.Len(t, raster.ColorMap.Entries, 2)
	assert.Equal(t, ColorMapEntry{Color: "#000000", Quantity: "0", Opacity: "0.5"}, raster.ColorMap.Entries[0])
	assert.Equal(t, "high", raster.ColorMap.Entries[1].Label)
}

func TestParse_Filters(t *testing.T) {
	tests := []struct {
		name  string
		xml   string
		check func(t *testing.T, p Predicate)
	}{
		{
			name: "and of comparisons",
			xml: `<ogc:And>
				<ogc:PropertyIsEqualTo><ogc:PropertyName>a</ogc:PropertyName><ogc:Literal>x</ogc:Literal></ogc:PropertyIsEqualTo>
				<ogc:PropertyIsNotEqualTo><ogc:PropertyName>b</ogc:PropertyName><ogc:Literal>y</ogc:Literal></ogc:PropertyIsNotEqualTo>
			</ogc:And>`,
			check: func(t *testing.T, p Predicate) {
				and, ok := p.(*And)
				require.True(t, ok, "got %T", p)
				require.Len(t, and.Children, 2)
				assert.Equal(t, OpEqualTo, and.Children[0].(*Comparison).Op)
				assert.Equal(t, OpNotEqualTo, and.Children[1].(*Comparison).Op)
			},
		},
		{
			name: "between",
			xml: `<ogc:PropertyIsBetween>
				<ogc:PropertyName>area</ogc:PropertyName>
				<ogc:LowerBoundary><ogc:Literal>10</ogc:Literal></ogc:LowerBoundary>
				<ogc:UpperBoundary><ogc:Literal>20</ogc:Literal></ogc:UpperBoundary>
			</ogc:PropertyIsBetween>`,
			check: func(t *testing.T, p Predicate) {
				b, ok := p.(*Between)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, &PropertyName{Name: "area"}, b.Expression)
				assert.Equal(t, &Literal{Value: "10"}, b.Lower)
				assert.Equal(t, &Literal{Value: "20"}, b.Upper)
			},
		},
		{
			name: "between without upper boundary",
			xml: `<ogc:PropertyIsBetween>
				<ogc:PropertyName>area</ogc:PropertyName>
				<ogc:LowerBoundary><ogc:Literal>10</ogc:Literal></ogc:LowerBoundary>
			</ogc:PropertyIsBetween>`,
			check: func(t *testing.T, p Predicate) {
				u, ok := p.(*UnsupportedPredicate)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, "PropertyIsBetween", u.Name.Local)
			},
		},
		{
			name: "unsupported predicate keeps fragment",
			xml:  `<ogc:PropertyIsLike wildCard="*"><ogc:PropertyName>n</ogc:PropertyName><ogc:Literal>A*</ogc:Literal></ogc:PropertyIsLike>`,
			check: func(t *testing.T, p Predicate) {
				u, ok := p.(*UnsupportedPredicate)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, NamespaceOGC, u.Name.Space)
				assert.Contains(t, u.Fragment, "PropertyIsLike")
				assert.Contains(t, u.Fragment, `wildCard="*"`)
			},
		},
		{
			name: "function operand",
			xml:  `<ogc:PropertyIsLessThan><ogc:Function name="strLength"><ogc:PropertyName>n</ogc:PropertyName></ogc:Function><ogc:Literal>3</ogc:Literal></ogc:PropertyIsLessThan>`,
			check: func(t *testing.T, p Predicate) {
				cmp, ok := p.(*Comparison)
				require.True(t, ok, "got %T", p)
				require.Len(t, cmp.Operands, 2)
				_, ok = cmp.Operands[0].(*UnsupportedOperand)
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Filter
			doc := `<ogc:Filter xmlns:ogc="http://www.opengis.net/ogc">` + tt.xml + `</ogc:Filter>`
			require.NoError(t, xml.Unmarshal([]byte(doc), &f))
			require.NotNil(t, f.Predicate)
			tt.check(t, f.Predicate)
		})
	}
}

func TestParse_FilterOutsideOGCNamespaceIgnored(t *testing.T) {
	doc := `<StyledLayerDescriptor xmlns="http://www.opengis.net/sld">
	  <NamedLayer><Name>l</Name><UserStyle><FeatureTypeStyle><Rule>
	    <Filter><PropertyIsEqualTo><PropertyName>a</PropertyName><Literal>1</Literal></PropertyIsEqualTo></Filter>
	  </Rule></FeatureTypeStyle></UserStyle></NamedLayer>
	</StyledLayerDescriptor>`

	parsed, err := Parse([]byte(doc))
	require.NoError(t, err)
	rule := parsed.NamedLayers[0].UserStyles[0].FeatureTypeStyles[0].Rules[0]
	assert.Nil(t, rule.Filter)
}

func TestParse_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<StyledLayerDescriptor xmlns=\"http://www.opengis.net/sld\"><NamedLayer><Name>caf\xe9</Name></NamedLayer></StyledLayerDescriptor>"

	parsed, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, parsed.NamedLayers, 1)
	assert.Equal(t, "café", parsed.NamedLayers[0].Name)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`<StyledLayerDescriptor><NamedLayer>`))
	require.Error(t, err)

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.sld")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Layers(), 2)

	_, err = ParseFile(filepath.Join(dir, "missing.sld"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, filepath.Join(dir, "missing.sld"), pe.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, SymbolizerText, KindOf(xml.Name{Space: NamespaceSE, Local: "TextSymbolizer"}))
	assert.Equal(t, SymbolizerRaster, KindOf(xml.Name{Space: NamespaceSLD, Local: "RasterSymbolizer"}))
	assert.Equal(t, SymbolizerUnknown, KindOf(xml.Name{Local: "LineSymbolizer"}))
	assert.Equal(t, "polygon", SymbolizerPolygon.String())
}
