package sections

import "html/template"

var fragmentTemplates = template.Must(template.New("sections").Parse(`
{{define "hero"}}<section class="section section--hero">{{if .Image}}<img src="{{.Image}}" alt="">{{end}}<h1>{{.Title}}</h1>{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}{{if and .CTAText .CTALink}}<a class="button" href="{{.CTALink}}">{{.CTAText}}</a>{{end}}</section>{{end}}
{{define "text"}}<section class="section section--text">{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}<p>{{.Body}}</p></section>{{end}}
{{define "richtext"}}<section class="section section--richtext">{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}<div class="prose">{{.Body}}</div></section>{{end}}
{{define "image"}}<figure class="section section--image"><img src="{{.URL}}" alt="{{.Alt}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>{{end}}
{{define "gallery"}}<section class="section section--gallery">{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}{{range .Images}}<figure><img src="{{.URL}}" alt="{{.Alt}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>{{end}}</section>{{end}}
{{define "features"}}<section class="section section--features">{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}<ul>{{range .Items}}<li>{{if .Icon}}<span class="icon" data-icon="{{.Icon}}"></span>{{end}}<h3>{{.Title}}</h3>{{if .Description}}<p>{{.Description}}</p>{{end}}</li>{{end}}</ul></section>{{end}}
{{define "faq"}}<section class="section section--faq">{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}<dl>{{range .Items}}<dt>{{.Question}}</dt><dd>{{.Answer}}</dd>{{end}}</dl></section>{{end}}
{{define "cta"}}<section class="section section--cta"><h2>{{.Heading}}</h2>{{if .Text}}<p>{{.Text}}</p>{{end}}{{if and .ButtonText .ButtonLink}}<a class="button" href="{{.ButtonLink}}">{{.ButtonText}}</a>{{end}}</section>{{end}}
{{define "columns"}}<section class="section section--columns">{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}<div class="columns">{{range .Columns}}<div class="column">{{if .Heading}}<h3>{{.Heading}}</h3>{{end}}<p>{{.Body}}</p></div>{{end}}</div></section>{{end}}
{{define "html"}}<section class="section section--html">{{.Body}}</section>{{end}}
{{define "diagnostic"}}<div class="section section--diagnostic" data-section-type="{{.Type}}" data-section-id="{{.SectionID}}">{{.Diagnostic}}: {{.Type}}</div>{{end}}
`))
