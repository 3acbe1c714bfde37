package entity

// DetectedBox представляет объект, найденный детектором на образце
type DetectedBox struct {
	Class      string  // имя класса из модели
	Confidence float64 // уверенность модели 0..1
	X          int     // координата X левого верхнего угла
	Y          int     // координата Y левого верхнего угла
	Width      int     // ширина области в пикселях
	Height     int     // высота области в пикселях
}

// Center возвращает координаты центра области
func (b DetectedBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Detection хранит итог работы детектора по одному изображению.
type Detection struct {
	ImageWidth  int           // ширина изображения
	ImageHeight int           // высота изображения
	Boxes       []DetectedBox // найденные объекты
}

// Classes возвращает имена классов в порядке обнаружения, с повторами.
func (d *Detection) Classes() []string {
	if d == nil {
		return nil
	}
	classes := make([]string, 0, len(d.Boxes))
	for _, b := range d.Boxes {
		classes = append(classes, b.Class)
	}
	return classes
}
