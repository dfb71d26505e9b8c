package headless

// prelude installs the page surface the injected scripts and simple hosted
// pages use. Native services come from the __host object set by Host.
const prelude = `(function (g) {
  "use strict";
  var host = g.__host;
  g.__host = undefined;

  g.window = g;
  g.self = g;
  g.location = { href: host.uri() };

  g.console = {
    log: function () { host.console("log", join(arguments)); },
    info: function () { host.console("info", join(arguments)); },
    debug: function () { host.console("debug", join(arguments)); },
    warn: function () { host.console("warn", join(arguments)); },
    error: function () { host.console("error", join(arguments)); }
  };
  function join(args) {
    var parts = [];
    for (var i = 0; i < args.length; i++) { parts.push(String(args[i])); }
    return parts.join(" ");
  }

  g.setTimeout = function (fn, ms) { return host.setTimeout(fn, ms || 0); };
  g.clearTimeout = function (id) { host.clearTimeout(id); };

  function matches(el, sel) {
    if (!el || !el.tagName) { return false; }
    var m = /^([a-z]+)(?:\[([a-z-]+)\])?$/i.exec(sel);
    if (!m) { return false; }
    if (el.tagName !== m[1].toUpperCase()) { return false; }
    return !m[2] || el.getAttribute(m[2]) !== null;
  }

  function Element(tag) {
    this.tagName = String(tag).toUpperCase();
    this.attrs = {};
    this.parentNode = null;
    this.children = [];
    this.innerText = "";
  }
  Element.prototype.getAttribute = function (n) {
    return Object.prototype.hasOwnProperty.call(this.attrs, n) ? this.attrs[n] : null;
  };
  Element.prototype.setAttribute = function (n, v) { this.attrs[n] = String(v); };
  Element.prototype.removeAttribute = function (n) { delete this.attrs[n]; };
  Element.prototype.closest = function (sel) {
    for (var el = this; el; el = el.parentNode) {
      if (matches(el, sel)) { return el; }
    }
    return null;
  };
  Element.prototype.appendChild = function (child) {
    child.parentNode = this;
    this.children.push(child);
    return child;
  };
  Element.prototype.removeChild = function (child) {
    var i = this.children.indexOf(child);
    if (i >= 0) { this.children.splice(i, 1); child.parentNode = null; }
    return child;
  };
  Element.prototype.remove = function () {
    if (this.parentNode) { this.parentNode.removeChild(this); }
  };
  Element.prototype.focus = function () { g.document.activeElement = this; };
  Element.prototype.click = function () { dispatchClick(this); };

  function HTMLAnchorElement() {
    Element.call(this, "a");
  }
  HTMLAnchorElement.prototype = Object.create(Element.prototype);
  HTMLAnchorElement.prototype.constructor = HTMLAnchorElement;
  Object.defineProperty(HTMLAnchorElement.prototype, "href", {
    get: function () { return this.getAttribute("href") || ""; },
    set: function (v) { this.setAttribute("href", v); }
  });
  Object.defineProperty(HTMLAnchorElement.prototype, "download", {
    get: function () { return this.getAttribute("download") || ""; },
    set: function (v) { this.setAttribute("download", v); }
  });
  HTMLAnchorElement.prototype.click = function () {
    if (!dispatchClick(this)) { return; }
    var href = this.href;
    if (!href) { return; }
    var name = this.getAttribute("download");
    if (name !== null || href.indexOf("blob:") === 0 || href.indexOf("data:") === 0) {
      host.download(href, name || "", blobType(href));
    } else {
      host.navigate(href);
    }
  };
  g.Element = Element;
  g.HTMLElement = Element;
  g.HTMLAnchorElement = HTMLAnchorElement;

  var listeners = [];
  function dispatchClick(target) {
    var prevented = false;
    var event = {
      type: "click",
      target: target,
      preventDefault: function () { prevented = true; }
    };
    var snapshot = listeners.slice();
    for (var i = 0; i < snapshot.length; i++) {
      if (snapshot[i].type === "click") {
        try { snapshot[i].fn.call(g.document, event); } catch (e) { g.console.error(String(e)); }
      }
    }
    return !prevented;
  }

  var body = new Element("body");
  g.document = {
    body: body,
    activeElement: null,
    title: "",
    createElement: function (tag) {
      return String(tag).toLowerCase() === "a" ? new HTMLAnchorElement() : new Element(tag);
    },
    addEventListener: function (type, fn) { listeners.push({ type: type, fn: fn }); },
    removeEventListener: function (type, fn) {
      listeners = listeners.filter(function (l) { return l.type !== type || l.fn !== fn; });
    }
  };

  var blobs = {};
  function Blob(parts, options) {
    var data = "";
    if (parts) {
      for (var i = 0; i < parts.length; i++) {
        data += parts[i] instanceof Blob ? parts[i]._data : String(parts[i]);
      }
    }
    this._data = data;
    this.size = data.length;
    this.type = options && options.type ? String(options.type).toLowerCase() : "";
  }
  Blob.prototype.text = function () { return Promise.resolve(this._data); };
  g.Blob = Blob;

  function blobType(url) {
    var b = blobs[url];
    return b ? b.type : "";
  }

  g.URL = {
    createObjectURL: function (blob) {
      var url = "blob:" + host.origin() + "/" + host.uuid();
      blobs[url] = blob;
      return url;
    },
    revokeObjectURL: function (url) { delete blobs[url]; }
  };

  g.fetch = function (url) {
    return new Promise(function (resolve, reject) {
      var b = blobs[String(url)];
      if (b === undefined) {
        reject(new TypeError("Failed to fetch"));
        return;
      }
      resolve({
        ok: true,
        status: 200,
        blob: function () { return Promise.resolve(b); },
        text: function () { return Promise.resolve(b._data); }
      });
    });
  };

  function FileReader() {
    this.result = null;
    this.onload = null;
    this.onloadend = null;
  }
  FileReader.prototype._finish = function (result) {
    var self = this;
    Promise.resolve().then(function () {
      self.result = result;
      if (typeof self.onload === "function") { self.onload({ target: self }); }
      if (typeof self.onloadend === "function") { self.onloadend({ target: self }); }
    });
  };
  FileReader.prototype.readAsDataURL = function (blob) {
    this._finish("data:" + (blob.type || "application/octet-stream") + ";base64," + host.base64(blob._data));
  };
  FileReader.prototype.readAsText = function (blob) {
    this._finish(blob._data);
  };
  g.FileReader = FileReader;

  g.webkit = { messageHandlers: {} };
  g.webkit.messageHandlers[host.handler()] = {
    postMessage: function (message) { host.postMessage(message); }
  };
})(globalThis);
`
