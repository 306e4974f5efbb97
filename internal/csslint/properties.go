package csslint

import "strings"

// knownProperties is the set of standard property names property-no-unknown accepts
var knownProperties = toSet(`
accent-color align-content align-items align-self align-tracks all animation
animation-delay animation-direction animation-duration animation-fill-mode
animation-iteration-count animation-name animation-play-state animation-timing-function
appearance aspect-ratio
backdrop-filter backface-visibility background background-attachment background-blend-mode
background-clip background-color background-image background-origin background-position
background-repeat background-size block-size border border-block border-bottom
border-collapse border-color border-inline border-left border-radius border-right
border-spacing border-style border-top border-width bottom box-shadow box-sizing
break-after break-before break-inside
caption-side caret-color clear clip-path color column-count column-fill column-gap
column-rule column-span column-width columns contain container container-name
container-type content content-visibility counter-increment counter-reset cursor
direction display
empty-cells
fill filter flex flex-basis flex-direction flex-grow flex-shrink flex-wrap float font
font-family font-feature-settings font-kerning font-size font-stretch font-style
font-synthesis font-variant font-variant-numeric font-weight
gap grid grid-column grid-row grid-template-areas grid-template-columns grid-template-rows
height hyphens
image-rendering inline-size inset inset-block inset-block-end inset-block-start
inset-inline inset-inline-end inset-inline-start isolation
justify-content justify-items justify-self
left letter-spacing line-height list-style list-style-image list-style-position
list-style-type
margin margin-block margin-block-end margin-block-start margin-bottom margin-inline
margin-inline-end margin-inline-start margin-left margin-right margin-top mask mask-image
max-block-size max-height max-inline-size max-width min-block-size min-height
min-inline-size min-width mix-blend-mode
object-fit object-position opacity order outline outline-color outline-offset
outline-style outline-width overflow overflow-wrap overflow-x overflow-y
overscroll-behavior
padding padding-block padding-block-end padding-block-start padding-bottom padding-inline
padding-inline-end padding-inline-start padding-left padding-right padding-top perspective
perspective-origin place-content place-items place-self pointer-events position
quotes
resize right rotate row-gap
scale scroll-behavior scroll-margin scroll-padding scroll-snap-align scroll-snap-type src
stroke
tab-size table-layout text-align text-decoration text-decoration-color
text-decoration-line text-decoration-style text-decoration-thickness text-indent
text-overflow text-rendering text-shadow text-transform text-underline-offset top
touch-action transform transform-origin transform-style transition transition-delay
transition-duration transition-property transition-timing-function translate
unicode-bidi unicode-range user-select
vertical-align visibility
white-space width will-change word-break word-spacing word-wrap writing-mode
z-index zoom
fr
`)

// knownPrefixes cover property families too large to enumerate
var knownPrefixes = []string{"flex-", "grid-", "border-", "padding-", "margin-", "scroll-", "mask-"}

// vendorPrefixes are never reported as unknown
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

// knownUnits holds length, angle, time, frequency, resolution and flex units
var knownUnits = toSet(`
px em rem ex ch lh rlh cap ic rex rch ric
vw vh vmin vmax vi vb svw svh lvw lvh dvw dvh
cqw cqh cqi cqb cqmin cqmax
cm mm q in pt pc
deg grad rad turn
s ms hz khz
dpi dpcm dppx x
fr
`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// knownProperty reports whether name is a property property-no-unknown accepts.
// name must already be lower case.
func knownProperty(name string) bool {
	if knownProperties[name] {
		return true
	}
	for _, prefix := range vendorPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
