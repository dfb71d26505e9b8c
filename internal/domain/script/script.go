// Package script builds the JavaScript evaluated in the hosted page: the
// native bridge shim, the page-finished hook, the blob fetch, and the
// native-to-script calls.
package script

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Script-side hook names the hosted application defines.
const (
	ResponseHook   = "onNativeResponse"
	EventHook      = "onNativeEvent"
	ScanResultHook = "onScanResult"
)

// CaptureMapGlobal is the page global recording anchor download names.
const CaptureMapGlobal = "__downloadMap"

// literal encodes s as a JavaScript string literal. JSON string syntax is a
// subset of JS and escapes U+2028/U+2029, so the result cannot break out
// of the surrounding expression.
func literal(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// postHelper defines post(msg) inside a script's IIFE.
const postHelper = `function post(msg) {
    var text = JSON.stringify(msg);
    if (window.NativeBridge && typeof window.NativeBridge.postMessage === "function") {
      window.NativeBridge.postMessage(text);
    } else {
      console.error("webshell: native bridge unavailable");
    }
  }`

// BridgeShim exposes window.NativeBridge.postMessage(string) on top of the
// WebKit script message handler named handler. Installing it twice is a
// no-op.
func BridgeShim(handler string) string {
	return fmt.Sprintf(`(function () {
  if (window.NativeBridge) { return; }
  var name = %s;
  window.NativeBridge = {
    postMessage: function (message) {
      var text = typeof message === "string" ? message : JSON.stringify(message);
      var handlers = window.webkit && window.webkit.messageHandlers;
      if (!handlers || !handlers[name]) {
        console.error("webshell: message handler " + name + " missing");
        return;
      }
      handlers[name].postMessage(text);
    }
  };
})();`, literal(handler))
}

// PageHook returns the page-finished snippet. It forwards a full-page
// {"status":"error",...} payload as ERROR_DIALOG, neutralizes
// URL.revokeObjectURL, and installs the anchor download-name capture once
// per page.
func PageHook() string {
	return strings.ReplaceAll(`(function () {
  `+postHelper+`

  try {
    var body = document.body;
    var content = body && typeof body.innerText === "string" ? body.innerText.trim() : "";
    if (content.indexOf('{"status":"error"') === 0) {
      var payload = JSON.parse(content);
      var message = payload && payload.message != null ? String(payload.message) : "";
      post({ action: "ERROR_DIALOG", data: { message: message } });
    }
  } catch (e) {
    console.error("webshell: error payload check failed: " + e);
  }

  if (window.URL) {
    window.URL.revokeObjectURL = function () {};
  }

  if (!window.CAPTURE_MAP) {
    window.CAPTURE_MAP = {};
  }
  if (window.__webshellClickHook) { return; }
  window.__webshellClickHook = true;

  function record(anchor) {
    if (!anchor || typeof anchor.getAttribute !== "function") { return; }
    var name = anchor.getAttribute("download");
    if (name) {
      window.CAPTURE_MAP[anchor.href] = name;
    }
  }

  if (window.HTMLAnchorElement && HTMLAnchorElement.prototype.click) {
    var originalClick = HTMLAnchorElement.prototype.click;
    HTMLAnchorElement.prototype.click = function () {
      record(this);
      return originalClick.apply(this, arguments);
    };
  }

  if (typeof document.addEventListener === "function") {
    document.addEventListener("click", function (event) {
      var target = event && event.target;
      if (target && typeof target.closest === "function") {
        record(target.closest("a[download]"));
      }
    }, true);
  }
})();`, "CAPTURE_MAP", CaptureMapGlobal)
}

// BlobFetchParams describes a blob download to fetch back into the host.
type BlobFetchParams struct {
	URL      string
	MIMEType string
	// FallbackFilename is used when neither the capture map nor the
	// focused anchor names the file.
	FallbackFilename string
}

// BlobFetch returns the script that reads a blob URL inside the page and
// posts DOWNLOAD_BLOB with the base64 payload. Fetch failures are logged
// to the page console only.
func BlobFetch(p BlobFetchParams) string {
	return fmt.Sprintf(`(function (url, listenerMime, fallbackName) {
  %s

  var name = "";
  var map = window.%s;
  if (map && map[url]) {
    name = map[url];
  } else {
    var el = document.activeElement;
    if (el && el.tagName !== "A" && typeof el.closest === "function") {
      el = el.closest("a");
    }
    if (el && typeof el.getAttribute === "function") {
      name = el.getAttribute("download") || "";
    }
  }

  fetch(url)
    .then(function (response) {
      if (!response.ok) {
        throw new Error("HTTP error, status = " + response.status);
      }
      return response.blob();
    })
    .then(function (blob) {
      var reader = new FileReader();
      reader.onloadend = function () {
        var result = String(reader.result || "");
        var comma = result.indexOf(",");
        var content = comma >= 0 ? result.substring(comma + 1) : result;
        var mime = blob.type && blob.type.length > 0 ? blob.type : listenerMime;
        post({
          action: "DOWNLOAD_BLOB",
          data: { base64: content, mimeType: mime, filename: name || fallbackName, sourceUrl: url }
        });
      };
      reader.readAsDataURL(blob);
    })
    .catch(function (err) {
      console.error("webshell: blob download failed: " + (err && err.message ? err.message : err));
    });
})(%s, %s, %s);`, postHelper, CaptureMapGlobal, literal(p.URL), literal(p.MIMEType), literal(p.FallbackFilename))
}

// ResponseCall invokes onNativeResponse(callbackID, payloadJSON).
func ResponseCall(callbackID, payloadJSON string) string {
	return hookCall(ResponseHook, callbackID, payloadJSON)
}

// EventCall invokes onNativeEvent(event, payloadJSON).
func EventCall(event, payloadJSON string) string {
	return hookCall(EventHook, event, payloadJSON)
}

// ScanResultCall invokes onScanResult(data).
func ScanResultCall(data string) string {
	return hookCall(ScanResultHook, data)
}

// hookCall calls window[fn](args...) when the page defines it. A missing
// hook or a throwing hook is reported on the page console.
func hookCall(fn string, args ...string) string {
	lits := make([]string, len(args))
	for i, a := range args {
		lits[i] = literal(a)
	}
	name := literal(fn)
	return fmt.Sprintf(`(function () {
  var fn = window[%s];
  if (typeof fn !== "function") {
    console.warn("webshell: " + %s + " is not defined");
    return;
  }
  try {
    fn(%s);
  } catch (e) {
    console.error("webshell: " + %s + " failed: " + e);
  }
})();`, name, name, strings.Join(lits, ", "), name)
}
