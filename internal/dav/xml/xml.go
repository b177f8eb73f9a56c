// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package xml renders and parses the WebDAV multistatus documents used
// by PROPFIND; only the read-only subset survives here (no PROPPATCH
// or LOCK request bodies).
package xml

import (
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"strings"
)

func x2s(xn xml.Name) string {
	if xn.Space == "" {
		return xn.Local
	}
	return xn.Space + ":" + xn.Local
}

func s2x(s string) xml.Name {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return xml.Name{Local: s}
	}
	return xml.Name{Space: s[:idx], Local: s[idx+1:]}
}

// Any is a single named property value, rendered either as chardata
// (Value) or as pre-built inner XML (Inner, used for resourcetype's
// nested <collection/>). XMLNS restates the property's namespace as an
// attribute, since Go's encoding/xml has no support for nested
// namespace-prefix definitions.
type Any struct {
	XMLName xml.Name
	XMLNS   string `xml:"xmlns,attr,omitempty"`
	Value   string `xml:",chardata"`
	Inner   string `xml:",innerxml"`
}

// NewAny builds a property with the given "space:local" name.
func NewAny(n string) Any {
	xn := s2x(n)
	a := Any{XMLName: xn, XMLNS: xn.Space}
	a.XMLName.Space = ""
	return a
}

type prop struct {
	XMLName xml.Name `xml:"prop"`
	XMLNS   string   `xml:"xmlns,attr,omitempty"`
	Any     []Any    `xml:",any"`
}

type propstat struct {
	XMLName xml.Name `xml:"propstat"`
	Prop    prop     `xml:"prop,omitempty"`
	Status  string   `xml:"status,omitempty"`
}

type multiResponse struct {
	XMLName  xml.Name `xml:"response"`
	Href     string   `xml:"href"`
	Status   string   `xml:"status,omitempty"`
	Propstat []propstat
}

// MultiStatus is the root of a PROPFIND 207 response. XMLNS declares
// DAV: as the default namespace so every unprefixed descendant element
// (response, href, propstat, prop, and the standard properties) is
// implicitly in it too, per XML namespace inheritance — the teacher's
// approach, as opposed to a "D:" prefix that only the root would carry.
type MultiStatus struct {
	XMLName  xml.Name `xml:"multistatus"`
	XMLNS    string   `xml:"xmlns,attr"`
	Response []multiResponse
}

// NewMultiStatus builds an empty multistatus document.
func NewMultiStatus() *MultiStatus {
	return &MultiStatus{XMLNS: "DAV:"}
}

// AddPropStatus appends a response for href, already percent-encoded
// by the caller, with found properties reported 200 OK and missing
// ones reported 404 Not Found in a separate propstat block.
func (m *MultiStatus) AddPropStatus(href string, found, missing []Any) {
	r := multiResponse{Href: href}
	if len(found) > 0 {
		r.Propstat = append(r.Propstat, propstat{
			Prop:   prop{Any: found},
			Status: "HTTP/1.1 200 OK",
		})
	}
	if len(missing) > 0 {
		r.Propstat = append(r.Propstat, propstat{
			Prop:   prop{Any: missing},
			Status: "HTTP/1.1 404 Not Found",
		})
	}
	m.Response = append(m.Response, r)
}

// AddStatus appends a response carrying only a top-level status, used
// for resources that could not be found or enumerated at all (spec.md
// scenario S6: a PROPFIND on a missing path gets one 404 response with
// no properties).
func (m *MultiStatus) AddStatus(href, status string) {
	m.Response = append(m.Response, multiResponse{Href: href, Status: status})
}

// StatusMulti is the WebDAV 207 Multi-Status extension to HTTP/1.1.
// http://www.webdav.org/specs/rfc4918.html#status.code.extensions.to.http11
const StatusMulti = 207

// Send serialises and writes the multistatus document.
func (m *MultiStatus) Send(w http.ResponseWriter) {
	b, err := xml.MarshalIndent(m, "", " ")
	if err != nil {
		panic(err)
	}
	b = append([]byte(xml.Header), b...)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(StatusMulti)
	w.Write(b)
}

type propfind struct {
	XMLName  xml.Name  `xml:"propfind"`
	AllProp  *struct{} `xml:"allprop"`
	PropName *struct{} `xml:"propname"`
	Prop     prop
}

// PropFindRequest is the decoded shape of a PROPFIND request body.
type PropFindRequest struct {
	AllProp, PropName bool
	PropertyNames     []string
}

// ParsePropFind parses a PROPFIND request body. An empty body (io.EOF)
// is treated the same as an explicit <allprop/>, matching RFC 4918's
// "a client may choose not to submit a request body [...] treated as
// if it were an 'allprop' request".
func ParsePropFind(in io.Reader) (PropFindRequest, error) {
	req := PropFindRequest{}

	d := xml.NewDecoder(in)
	pf := propfind{}
	err := d.Decode(&pf)
	if err == io.EOF {
		req.AllProp = true
		return req, nil
	}
	if err != nil {
		return req, err
	}

	req.AllProp = pf.AllProp != nil
	req.PropName = pf.PropName != nil
	if !req.AllProp && !req.PropName && len(pf.Prop.Any) == 0 {
		req.AllProp = true
	}

	names := make([]string, 0, len(pf.Prop.Any))
	for _, v := range pf.Prop.Any {
		if v.XMLName.Local == "" {
			continue
		}
		names = append(names, x2s(v.XMLName))
	}
	req.PropertyNames = names
	return req, nil
}
