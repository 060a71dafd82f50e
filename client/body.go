package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
)

// Body 请求体，负责序列化并给出 Content-Type
type Body interface {
	Encode() (io.Reader, string, error)
}

// Form application/x-www-form-urlencoded 请求体
type Form url.Values

// Encode 序列化表单
func (f Form) Encode() (io.Reader, string, error) {
	return strings.NewReader(url.Values(f).Encode()), "application/x-www-form-urlencoded", nil
}

// File 上传的文件
type File struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

// Multipart multipart/form-data 请求体，字段按追加顺序写入
type Multipart struct {
	Fields [][2]string
	Files  []File
}

// Add 追加一个文本字段
func (m *Multipart) Add(name, value string) {
	m.Fields = append(m.Fields, [2]string{name, value})
}

// Attach 追加一个文件字段，content 为 nil 时忽略
func (m *Multipart) Attach(field, name string, content io.Reader) {
	if content == nil {
		return
	}
	m.Files = append(m.Files, File{FieldName: field, FileName: name, Content: content})
}

// Encode 序列化 multipart 请求体
func (m *Multipart) Encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range m.Fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	for _, f := range m.Files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", f.FieldName, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy form file %s: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
